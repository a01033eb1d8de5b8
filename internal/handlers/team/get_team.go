package team

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/banlak-networks/balance-server/internal/logging"
	"github.com/banlak-networks/balance-server/internal/service"
)

// GetTeamInput is the Huma input for the team lookup.
type GetTeamInput struct {
	Authorization string `header:"Authorization" doc:"Bearer <team API key>"`
}

// GetTeamResponseBody is the response body for the team lookup.
type GetTeamResponseBody struct {
	Success      bool   `json:"success"`
	TeamID       string `json:"teamId" doc:"Team UUID"`
	TeamName     string `json:"teamName" doc:"Team name"`
	WebsiteCount int    `json:"websiteCount" doc:"Number of websites the team operates"`
}

// GetTeamOutput is the Huma output for the team lookup.
type GetTeamOutput struct {
	Body GetTeamResponseBody
}

// websiteLister is the interface for listing a team's websites.
type websiteLister interface {
	ListByTeam(ctx context.Context, apiKey string) (*service.WebsiteListResult, error)
}

// GetTeamHandler handles GET /api/team.
type GetTeamHandler struct {
	WebsiteService websiteLister
}

// NewGetTeamHandler creates a new GetTeamHandler.
func NewGetTeamHandler(svc websiteLister) *GetTeamHandler {
	return &GetTeamHandler{WebsiteService: svc}
}

// Register registers the team lookup endpoint with the Huma API.
func (h *GetTeamHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-team",
		Method:      http.MethodGet,
		Path:        "/api/team",
		Summary:     "Look up the calling team",
		Description: "Resolves the bearer API key to its team record.",
		Tags:        []string{"Team"},
	}, h.handle)
}

func (h *GetTeamHandler) handle(ctx context.Context, input *GetTeamInput) (*GetTeamOutput, error) {
	logData := logging.GetLogData(ctx)

	apiKey, ok := bearerToken(input.Authorization)
	if !ok {
		return nil, errMissingCredential()
	}

	result, err := h.WebsiteService.ListByTeam(ctx, apiKey)
	if err != nil {
		return nil, serviceError(err)
	}

	if logData != nil {
		logData.AddData("teamID", result.Team.ID.String())
	}

	return &GetTeamOutput{
		Body: GetTeamResponseBody{
			Success:      true,
			TeamID:       result.Team.ID.String(),
			TeamName:     result.Team.Name,
			WebsiteCount: len(result.Websites),
		},
	}, nil
}
