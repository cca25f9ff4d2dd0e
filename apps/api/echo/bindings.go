package echoapi

import (
	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/views"
)

type (
	SelectClassRequest struct {
		ID string `json:"id"`
	}

	CreateClassResponse struct {
		Class   register.Class `json:"class"`
		Created bool           `json:"created"`
	}

	MarkRequest struct {
		Status string `json:"status"`
	}

	MarkAllResponse struct {
		Marked int `json:"marked"`
	}

	ClearDayResponse struct {
		Cleared bool `json:"cleared"`
	}

	// SessionResponse never carries the password.
	SessionResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	TeachersResponse struct {
		Teachers []string `json:"teachers"`
		Empty    string   `json:"empty,omitempty"`
	}

	DatesResponse struct {
		Dates []views.DateChip `json:"dates"`
		Empty string           `json:"empty,omitempty"`
	}

	SummaryResponse struct {
		Summary []views.SummaryRow `json:"summary"`
		Empty   string             `json:"empty,omitempty"`
	}
)

// dateParam validates a date path parameter.
func dateParam(date string) error {
	if !core.ValidDate(date) {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "date must be a date in the YYYY-MM-DD format"})
	}
	return nil
}
