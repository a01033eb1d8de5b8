package team

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/banlak-networks/balance-server/internal/logging"
	"github.com/banlak-networks/balance-server/internal/service"
)

// ClaimPendingInput is the Huma input for claiming a pending transaction.
type ClaimPendingInput struct {
	Authorization string `header:"Authorization" doc:"Bearer <team API key>"`
}

// ClaimPendingResponseBody is the response body for claiming a pending
// transaction. Transaction is null when the team has none pending.
type ClaimPendingResponseBody struct {
	Success     bool         `json:"success"`
	TeamID      string       `json:"teamId" doc:"Resolved team UUID"`
	TeamName    string       `json:"teamName" doc:"Resolved team name"`
	Message     string       `json:"message"`
	Transaction *Transaction `json:"transaction" doc:"Claimed transaction, null when none was pending"`
}

// ClaimPendingOutput is the Huma output for claiming a pending transaction.
type ClaimPendingOutput struct {
	Body ClaimPendingResponseBody
}

// pendingClaimer is the interface for claiming pending transactions.
type pendingClaimer interface {
	ClaimOldestPending(ctx context.Context, apiKey string) (*service.ClaimResult, error)
}

// ClaimPendingHandler handles GET /api/team/pending-transactions.
type ClaimPendingHandler struct {
	TransactionService pendingClaimer
}

// NewClaimPendingHandler creates a new ClaimPendingHandler.
func NewClaimPendingHandler(svc pendingClaimer) *ClaimPendingHandler {
	return &ClaimPendingHandler{TransactionService: svc}
}

// Register registers the claim endpoint with the Huma API.
func (h *ClaimPendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "claim-pending-transaction",
		Method:      http.MethodGet,
		Path:        "/api/team/pending-transactions",
		Summary:     "Claim oldest pending transaction",
		Description: "Atomically transitions the team's oldest pending transaction to in-progress and returns it.",
		Tags:        []string{"Team"},
	}, h.handle)
}

func (h *ClaimPendingHandler) handle(ctx context.Context, input *ClaimPendingInput) (*ClaimPendingOutput, error) {
	logData := logging.GetLogData(ctx)

	apiKey, ok := bearerToken(input.Authorization)
	if !ok {
		return nil, errMissingCredential()
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("claimPendingMs")
	}
	result, err := h.TransactionService.ClaimOldestPending(ctx, apiKey)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, serviceError(err)
	}

	if logData != nil {
		logData.AddData("teamID", result.Team.ID.String())
		logData.AddData("claimed", result.Transaction != nil)
	}

	resp := ClaimPendingResponseBody{
		Success:  true,
		TeamID:   result.Team.ID.String(),
		TeamName: result.Team.Name,
	}

	if result.Transaction == nil {
		resp.Message = "no pending transactions"
		return &ClaimPendingOutput{Body: resp}, nil
	}

	resp.Message = "claimed oldest pending transaction"
	resp.Transaction = transactionToAPI(result.Transaction)
	return &ClaimPendingOutput{Body: resp}, nil
}
