package http

import (
	"net/http"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// RegisterWorker handles POST /api/v1/workers. The ID is optional so a worker
// can be registered under the subject of an existing identity.
func (s *Server) RegisterWorker(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req registerWorkerRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	workerID := kernel.NewUUID()
	if req.ID != "" {
		if workerID, err = kernel.UUIDFromString(req.ID); err != nil {
			return err
		}
	}

	cmd, err := commands.NewRegisterWorkerCommand(actor, workerID, req.Name)
	if err != nil {
		return err
	}
	if err = s.handlers.RegisterWorker.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, workerResponse{ID: workerID.String(), Name: cmd.Name()})
}

// ListWorkers handles GET /api/v1/workers.
func (s *Server) ListWorkers(c echo.Context) error {
	workers, err := s.handlers.ListWorkers.Handle(c.Request().Context(), queries.NewListWorkersQuery())
	if err != nil {
		return err
	}

	response := make([]workerResponse, len(workers))
	for i, w := range workers {
		response[i] = workerResponse{ID: w.ID.String(), Name: w.Name, CreatedAt: w.CreatedAt}
	}
	return c.JSON(http.StatusOK, response)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}
