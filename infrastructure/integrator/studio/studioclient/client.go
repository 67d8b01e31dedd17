package studioclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/studio-console/internal/config"
	"github.com/vfg2006/studio-console/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	dashboardPath = "/api/v1/studio/dashboard"
	loginPath     = "/api/v1/studio/auth/login"

	defaultTimeout = 30 * time.Second
	// Error bodies are only kept for diagnostics.
	maxErrorBody = 4 << 10
)

type Client interface {
	GetDashboard(ctx context.Context, accessToken string) (*DashboardResponse, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
}

// Envelope is the studio backend response shape: {success, data?, error?}.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type DashboardResponse = Envelope[domain.DashboardSnapshot]

type LoginData struct {
	Token string `json:"token"`
}

type LoginResponse = Envelope[LoginData]

type StudioClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.StudioAPI.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &StudioClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: cfg.StudioAPI.URL,
	}
}

func (c *StudioClient) endpoint(p string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrap(err, "studioclient: parse base url")
	}
	u.Path = path.Join(u.Path, p)
	return u.String(), nil
}

// do sends req and decodes a 2xx body into out. Any other status becomes an
// *HTTPError carrying the status code and the (truncated) body.
func (c *StudioClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "studioclient: %s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "studioclient: decode response")
	}

	return nil
}
