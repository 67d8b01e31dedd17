package handler

import (
	"net/http"

	"github.com/vfg2006/studio-console/internal/api/handler/router"
	"github.com/vfg2006/studio-console/internal/usecases/authenticating"
	"github.com/vfg2006/studio-console/internal/view"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(auth authenticating.Authenticator, sessions SessionManager, screens ScreenRegistry) []router.Route {
	return []router.Route{
		{
			Path:    "/login",
			Method:  http.MethodGet,
			Handler: LoginPage(sessions),
		},
		{
			Path:    "/login",
			Method:  http.MethodPost,
			Handler: Login(auth, sessions),
		},
		{
			Path:    "/logout",
			Method:  http.MethodPost,
			Handler: Logout(sessions, screens),
		},
	}
}

func Dashboards(screens ScreenRegistry, sessions SessionManager) []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: Root(),
		},
		{
			Path:    DashboardPath,
			Method:  http.MethodGet,
			Handler: Dashboard(screens, sessions),
		},
		{
			Path:    view.TimeframeFormPath,
			Method:  http.MethodPost,
			Handler: SelectTimeframe(screens, sessions),
		},
		{
			Path:    view.AlertDismissPath,
			Method:  http.MethodGet,
			Handler: DismissAlert(screens, sessions),
		},
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: DashboardJSON(screens, sessions),
		},
	}
}
