package studioclient

import (
	"bytes"
	"context"
	"net/http"

	"github.com/pkg/errors"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges studio credentials for a backend access token.
func (c *StudioClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	endpoint, err := c.endpoint(loginPath)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, errors.Wrap(err, "studioclient: encode login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "studioclient: build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	var response LoginResponse
	if err := c.do(req, &response); err != nil {
		return nil, err
	}

	return &response, nil
}
