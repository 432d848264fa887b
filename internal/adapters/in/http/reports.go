package http

import (
	"net/http"

	"workorders/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// PayrollSummary handles GET /api/v1/reports/payroll?from=&to=. Bounds are
// RFC 3339 timestamps or dates; to is exclusive.
func (s *Server) PayrollSummary(c echo.Context) error {
	from, err := queries.ParsePeriodBound("from", c.QueryParam("from"))
	if err != nil {
		return err
	}
	to, err := queries.ParsePeriodBound("to", c.QueryParam("to"))
	if err != nil {
		return err
	}

	query, err := queries.NewPayrollSummaryQuery(from, to)
	if err != nil {
		return err
	}
	summary, err := s.handlers.PayrollSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	lines := make([]payrollLineResponse, len(summary.Lines))
	for i, l := range summary.Lines {
		lines[i] = toPayrollLineResponse(l)
	}
	return c.JSON(http.StatusOK, payrollResponse{
		From:   summary.From,
		To:     summary.To,
		Lines:  lines,
		Totals: toPayrollLineResponse(summary.Totals),
	})
}
