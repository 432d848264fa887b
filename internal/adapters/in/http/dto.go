package http

import (
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

type registerWorkerRequest struct {
	ID   string `json:"id" validate:"omitempty,uuid"`
	Name string `json:"name" validate:"required,max=255"`
}

type workerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type assignmentRequest struct {
	WorkerID string           `json:"worker_id" validate:"required,uuid"`
	Value    *decimal.Decimal `json:"value" validate:"required"`
}

type createWorkOrdersRequest struct {
	Title        string              `json:"title" validate:"required,max=255"`
	Description  string              `json:"description" validate:"max=10000"`
	Deadline     time.Time           `json:"deadline" validate:"required"`
	Requirements []string            `json:"requirements" validate:"max=100,dive,max=500"`
	Assignments  []assignmentRequest `json:"assignments" validate:"required,min=1,max=100,dive"`
}

type createWorkOrdersResponse struct {
	BatchID      string   `json:"batch_id"`
	WorkOrderIDs []string `json:"work_order_ids"`
}

type editWorkOrderRequest struct {
	Title        *string          `json:"title" validate:"omitempty,max=255"`
	Description  *string          `json:"description" validate:"omitempty,max=10000"`
	Value        *decimal.Decimal `json:"value"`
	Deadline     *time.Time       `json:"deadline"`
	Requirements *[]string        `json:"requirements" validate:"omitempty,max=100,dive,max=500"`
	WorkerID     *string          `json:"worker_id" validate:"omitempty,uuid"`
}

type respondRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

type extendDeadlineRequest struct {
	Deadline time.Time `json:"deadline" validate:"required"`
}

type setPaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid"`
}

type bulkPayRequest struct {
	WorkOrderIDs []string `json:"work_order_ids" validate:"required,min=1,max=500,dive,uuid"`
}

type bulkPayResult struct {
	WorkOrderID string         `json:"work_order_id"`
	OK          bool           `json:"ok"`
	Error       *ErrorResponse `json:"error,omitempty"`
}

type bulkPayResponse struct {
	Results []bulkPayResult `json:"results"`
}

type settlementResponse struct {
	DaysLate          int    `json:"days_late"`
	PenaltyPercentage int    `json:"penalty_percentage"`
	PenaltyAmount     string `json:"penalty_amount"`
	FinalValue        string `json:"final_value"`
}

type paymentResponse struct {
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"payment_date"`
}

type workOrderResponse struct {
	ID                    string              `json:"id"`
	BatchID               string              `json:"batch_id"`
	CreatedBy             string              `json:"created_by"`
	WorkerID              string              `json:"worker_id"`
	WorkerName            string              `json:"worker_name,omitempty"`
	Title                 string              `json:"title"`
	Description           string              `json:"description"`
	Requirements          []string            `json:"requirements"`
	Value                 string              `json:"value"`
	Deadline              time.Time           `json:"deadline"`
	State                 string              `json:"state"`
	CompletionRequestedAt *time.Time          `json:"completion_requested_at"`
	CompletedAt           *time.Time          `json:"completed_at"`
	Settlement            *settlementResponse `json:"settlement"`
	Payment               *paymentResponse    `json:"payment"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	Version               int                 `json:"version"`
}

func toWorkOrderResponse(v queries.WorkOrderView) workOrderResponse {
	resp := workOrderResponse{
		ID:                    v.ID.String(),
		BatchID:               v.BatchID.String(),
		CreatedBy:             v.CreatedBy.String(),
		WorkerID:              v.WorkerID.String(),
		WorkerName:            v.WorkerName,
		Title:                 v.Title,
		Description:           v.Description,
		Requirements:          v.Requirements,
		Value:                 v.Value.Amount().StringFixed(2),
		Deadline:              v.Deadline,
		State:                 v.State.String(),
		CompletionRequestedAt: v.CompletionRequestedAt,
		CompletedAt:           v.CompletedAt,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
		Version:               v.Version,
	}
	if s := v.Settlement; s != nil {
		resp.Settlement = &settlementResponse{
			DaysLate:          s.DaysLate,
			PenaltyPercentage: s.PenaltyPercentage,
			PenaltyAmount:     s.PenaltyAmount.Amount().StringFixed(2),
			FinalValue:        s.FinalValue.Amount().StringFixed(2),
		}
	}
	if v.PaymentStatus != "" {
		resp.Payment = &paymentResponse{
			Status:      v.PaymentStatus.String(),
			PaymentDate: v.PaymentDate,
		}
	}
	return resp
}

type payrollLineResponse struct {
	WorkerID         string `json:"worker_id,omitempty"`
	WorkerName       string `json:"worker_name,omitempty"`
	Orders           int    `json:"orders"`
	OnTime           int    `json:"on_time"`
	Late             int    `json:"late"`
	TotalOriginal    string `json:"total_original"`
	TotalPenalty     string `json:"total_penalty"`
	TotalFinal       string `json:"total_final"`
	TotalPaid        string `json:"total_paid"`
	TotalOutstanding string `json:"total_outstanding"`
}

type payrollResponse struct {
	From   time.Time             `json:"from"`
	To     time.Time             `json:"to"`
	Lines  []payrollLineResponse `json:"lines"`
	Totals payrollLineResponse   `json:"totals"`
}

func toPayrollLineResponse(l queries.PayrollLine) payrollLineResponse {
	resp := payrollLineResponse{
		WorkerName:       l.WorkerName,
		Orders:           l.Orders,
		OnTime:           l.OnTime,
		Late:             l.Late,
		TotalOriginal:    l.TotalOriginal.Amount().StringFixed(2),
		TotalPenalty:     l.TotalPenalty.Amount().StringFixed(2),
		TotalFinal:       l.TotalFinal.Amount().StringFixed(2),
		TotalPaid:        l.TotalPaid.Amount().StringFixed(2),
		TotalOutstanding: l.TotalOutstanding.Amount().StringFixed(2),
	}
	if l.WorkerID.Validate() == nil {
		resp.WorkerID = l.WorkerID.String()
	}
	return resp
}

func toBulkPayResponse(outcomes []commands.PaymentOutcome) bulkPayResponse {
	results := make([]bulkPayResult, 0, len(outcomes))
	for _, o := range outcomes {
		r := bulkPayResult{WorkOrderID: o.WorkOrderID.String(), OK: o.Err == nil}
		if o.Err != nil {
			resp := errorResponse(o.Err)
			r.Error = &resp
		}
		results = append(results, r)
	}
	return bulkPayResponse{Results: results}
}
