package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/studio-console/internal/usecases/authenticating"
	"github.com/vfg2006/studio-console/internal/usecases/dashboarding"
	"github.com/vfg2006/studio-console/internal/view"
	"github.com/vfg2006/studio-console/pkg/log"
	"github.com/vfg2006/studio-console/pkg/middleware"
)

const (
	DashboardPath = "/dashboard"

	msgInvalidForm        = "Enter a valid email and password."
	msgInvalidCredentials = "Invalid email or password."
	msgStudioUnavailable  = "Studio is unavailable right now. Please try again."
	msgSignedOut          = "You have been signed out."
)

var validate = validator.New()

type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginPage shows the sign-in form, or sends signed-in creators to the dashboard.
func LoginPage(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.SessionFromContext(r.Context()) != nil {
			http.Redirect(w, r, DashboardPath, http.StatusFound)
			return
		}

		renderLogin(w, r, http.StatusOK, view.LoginForm{Flashes: sessions.Flashes(w, r)})
	}
}

func Login(auth authenticating.Authenticator, sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderLogin(w, r, http.StatusBadRequest, view.LoginForm{Error: msgInvalidForm})
			return
		}

		req := LoginRequest{
			Email:    r.PostForm.Get("email"),
			Password: r.PostForm.Get("password"),
		}
		if err := validate.Struct(req); err != nil {
			renderLogin(w, r, http.StatusBadRequest, view.LoginForm{Email: req.Email, Error: msgInvalidForm})
			return
		}

		ctx := r.Context()
		logger := log.ForContext(ctx)

		token, err := auth.LoginUser(ctx, req.Email, req.Password)
		if err != nil {
			if authenticating.IsCredentialsError(err) {
				renderLogin(w, r, http.StatusUnauthorized, view.LoginForm{Email: req.Email, Error: msgInvalidCredentials})
				return
			}
			logger.WithError(err).Error("login failed")
			renderLogin(w, r, http.StatusBadGateway, view.LoginForm{Email: req.Email, Error: msgStudioUnavailable})
			return
		}

		sess, err := sessions.Create(w, r, token)
		if err != nil {
			if authenticating.IsTokenError(err) {
				logger.WithError(err).Warn("studio issued a token the console cannot verify")
				renderLogin(w, r, http.StatusUnauthorized, view.LoginForm{Email: req.Email, Error: msgInvalidCredentials})
				return
			}
			logger.WithError(err).Error("failed to create session")
			renderLogin(w, r, http.StatusInternalServerError, view.LoginForm{Email: req.Email, Error: msgStudioUnavailable})
			return
		}

		logger.WithFields(log.Fields{"session_id": sess.ID, "user_id": sess.UserID}).Info("creator signed in")
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
	}
}

func Logout(sessions SessionManager, screens ScreenRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessions.Logout(w, r)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("failed to end session")
		}
		if id != "" {
			screens.Forget(id)
		}

		sessions.AddFlash(w, r, msgSignedOut)
		http.Redirect(w, r, dashboarding.LoginPath, http.StatusSeeOther)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, status int, form view.LoginForm) {
	if err := view.Render(w, status, view.LoginPage(form)); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("failed to render login page")
	}
}
