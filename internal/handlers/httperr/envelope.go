// Package httperr installs the API's error envelope. Every error leaving the
// API, including huma's own validation failures, serializes as
// {"success": false, "error": "...", "details": "..."} so clients see one
// shape across auth, availability, and unknown failures.
package httperr

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// Envelope is the wire error body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"error" doc:"Human-readable error"`
	Details string `json:"details,omitempty" doc:"Underlying cause, when known"`

	status int
}

func (e *Envelope) Error() string {
	return e.Message
}

func (e *Envelope) GetStatus() int {
	return e.status
}

// New builds an envelope error with the given HTTP status. Non-nil causes
// are joined into the details field.
func New(status int, message string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}

	return &Envelope{
		Success: false,
		Message: message,
		Details: strings.Join(details, "; "),
		status:  status,
	}
}

func init() {
	huma.NewError = New
}
