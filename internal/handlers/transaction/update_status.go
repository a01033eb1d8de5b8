package transaction

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/banlak-networks/balance-server/internal/handlers/httperr"
	"github.com/banlak-networks/balance-server/internal/logging"
	"github.com/banlak-networks/balance-server/internal/operator"
	"github.com/banlak-networks/balance-server/internal/operator/actions"
	"github.com/banlak-networks/balance-server/internal/service"
	storagetx "github.com/banlak-networks/balance-server/internal/storage/transaction"
)

// UpdateStatusBody is the request body for a status transition.
type UpdateStatusBody struct {
	Status string  `json:"status" required:"true" enum:"completed,failed" doc:"Target terminal status"`
	Note   *string `json:"note,omitempty" doc:"Optional note recorded with the transition"`
}

// UpdateStatusInput is the Huma input for a status transition.
type UpdateStatusInput struct {
	Authorization string `header:"Authorization" doc:"Bearer <team API key>"`
	ID            string `path:"id" doc:"Transaction UUID"`
	Body          UpdateStatusBody
}

// UpdateStatusResponseBody is the response body for a status transition.
type UpdateStatusResponseBody struct {
	Success   bool   `json:"success"`
	ID        string `json:"id" doc:"Transaction UUID"`
	Status    string `json:"status" doc:"Status after the transition"`
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 update time"`
	Message   string `json:"message"`
}

// UpdateStatusOutput is the Huma output for a status transition.
type UpdateStatusOutput struct {
	Body UpdateStatusResponseBody
}

// teamResolver is the interface for resolving the caller's credential.
type teamResolver interface {
	ResolveByAPIKey(ctx context.Context, apiKey string) (service.Team, error)
}

// actionProcessor is the interface for running actions through the operator.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

var _ actionProcessor = (*operator.OperatorDelegator)(nil)

// UpdateStatusHandler handles POST /api/team/transactions/{id}/status.
type UpdateStatusHandler struct {
	TeamService teamResolver
	Operator    actionProcessor
}

// NewUpdateStatusHandler creates a new UpdateStatusHandler.
func NewUpdateStatusHandler(svc teamResolver, op actionProcessor) *UpdateStatusHandler {
	return &UpdateStatusHandler{TeamService: svc, Operator: op}
}

// Register registers the status transition endpoint with the Huma API.
func (h *UpdateStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction-status",
		Method:      http.MethodPost,
		Path:        "/api/team/transactions/{id}/status",
		Summary:     "Transition a transaction to a terminal status",
		Description: "Moves one of the team's in-progress transactions to completed or failed.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateStatusHandler) handle(ctx context.Context, input *UpdateStatusInput) (*UpdateStatusOutput, error) {
	logData := logging.GetLogData(ctx)

	apiKey, ok := bearerToken(input.Authorization)
	if !ok {
		return nil, httperr.New(http.StatusUnauthorized, "missing or malformed Authorization header")
	}

	team, err := h.TeamService.ResolveByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, resolveError(err)
	}

	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, httperr.New(http.StatusBadRequest, "invalid transaction id", err)
	}

	action := &actions.UpdateTransactionStatus{
		TeamID:        team.ID,
		TransactionID: transactionID,
		NewStatus:     storagetx.Status(input.Body.Status),
		Note:          input.Body.Note,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateStatusMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, actionError(err)
	}

	if logData != nil {
		logData.AddData("transactionID", transactionID.String())
		logData.AddData("status", input.Body.Status)
	}

	return &UpdateStatusOutput{
		Body: UpdateStatusResponseBody{
			Success:   true,
			ID:        action.Updated.ID.String(),
			Status:    string(action.Updated.Status),
			UpdatedAt: action.Updated.UpdatedAt.Format(time.RFC3339),
			Message:   "status updated",
		},
	}, nil
}

func resolveError(err error) huma.StatusError {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return httperr.New(http.StatusUnauthorized, "invalid or unknown team API key")
	case errors.Is(err, service.ErrStoreUnavailable):
		return httperr.New(http.StatusServiceUnavailable,
			"transaction store unavailable; verify the database is reachable and read permissions are granted", err)
	default:
		return httperr.New(http.StatusInternalServerError, "internal server error", err)
	}
}

func actionError(err error) huma.StatusError {
	switch {
	case errors.Is(err, actions.ErrTransactionNotFound):
		return httperr.New(http.StatusNotFound, "transaction not found")
	case errors.Is(err, actions.ErrInvalidTransition):
		return httperr.New(http.StatusBadRequest, "status transition not allowed", err)
	default:
		return httperr.New(http.StatusServiceUnavailable,
			"transaction store unavailable; the transition outcome is unknown, re-query before retrying", err)
	}
}

// bearerToken extracts the API key from an Authorization header value.
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
