package api

import (
	"github.com/solarsim/solarsim/sim/report"
)

// SimulateResponse is the success payload for POST /api/v1/simulate.
type SimulateResponse struct {
	Records []report.ResultRecord `json:"records"`
	Summary *report.RunSummary    `json:"summary"`
}

// ValidateResponse is the success payload for POST /api/v1/validate.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// ErrorDetail carries a machine-readable code plus a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func errorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
