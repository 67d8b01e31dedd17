package studioclient

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// GetDashboard fetches the creator dashboard aggregate with the session's
// bearer token.
func (c *StudioClient) GetDashboard(ctx context.Context, accessToken string) (*DashboardResponse, error) {
	endpoint, err := c.endpoint(dashboardPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "studioclient: build dashboard request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var response DashboardResponse
	if err := c.do(req, &response); err != nil {
		return nil, err
	}

	return &response, nil
}
