package team

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/banlak-networks/balance-server/internal/logging"
)

// Website is the API response model for a website.
type Website struct {
	ID     string `json:"id" doc:"Website UUID"`
	Name   string `json:"name" doc:"Website display name"`
	URL    string `json:"url" doc:"Website URL"`
	Active bool   `json:"active" doc:"Whether the website is active"`
}

// ListWebsitesInput is the Huma input for listing websites.
type ListWebsitesInput struct {
	Authorization string `header:"Authorization" doc:"Bearer <team API key>"`
}

// ListWebsitesResponseBody is the response body for listing websites.
type ListWebsitesResponseBody struct {
	Success  bool      `json:"success"`
	TeamID   string    `json:"teamId" doc:"Team UUID"`
	TeamName string    `json:"teamName" doc:"Team name"`
	Websites []Website `json:"websites" doc:"Websites operated by the team"`
}

// ListWebsitesOutput is the Huma output for listing websites.
type ListWebsitesOutput struct {
	Body ListWebsitesResponseBody
}

// ListWebsitesHandler handles GET /api/team/websites.
type ListWebsitesHandler struct {
	WebsiteService websiteLister
}

// NewListWebsitesHandler creates a new ListWebsitesHandler.
func NewListWebsitesHandler(svc websiteLister) *ListWebsitesHandler {
	return &ListWebsitesHandler{WebsiteService: svc}
}

// Register registers the website listing endpoint with the Huma API.
func (h *ListWebsitesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-team-websites",
		Method:      http.MethodGet,
		Path:        "/api/team/websites",
		Summary:     "List the calling team's websites",
		Tags:        []string{"Team"},
	}, h.handle)
}

func (h *ListWebsitesHandler) handle(ctx context.Context, input *ListWebsitesInput) (*ListWebsitesOutput, error) {
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
		logData.AddData("websiteCount", len(result.Websites))
	}

	resp := ListWebsitesResponseBody{
		Success:  true,
		TeamID:   result.Team.ID.String(),
		TeamName: result.Team.Name,
		Websites: make([]Website, len(result.Websites)),
	}

	for i, site := range result.Websites {
		resp.Websites[i] = Website{
			ID:     site.ID.String(),
			Name:   site.Name,
			URL:    site.URL,
			Active: site.Active,
		}
	}

	return &ListWebsitesOutput{Body: resp}, nil
}
