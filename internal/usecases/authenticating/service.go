package authenticating

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/vfg2006/studio-console/infrastructure/integrator/studio/studioclient"
	"github.com/vfg2006/studio-console/internal/config"
	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/pkg/apiErrors"
	"github.com/vfg2006/studio-console/pkg/log"
)

type Authenticator interface {
	// LoginUser returns the studio backend access token for the credentials.
	LoginUser(ctx context.Context, email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	client studioclient.Client
	cfg    *config.Config
}

func NewService(client studioclient.Client, cfg *config.Config) Authenticator {
	return &Service{
		client: client,
		cfg:    cfg,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrInvalidRequest, "email and password are required")
	}

	email = handleEmail(email)
	logger := log.ForContext(ctx).WithField("email", email)

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		status := studioclient.StatusCode(err)
		if status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden {
			return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
		}
		logger.WithError(err).Error("studio login failed")
		return "", NewAuthError(ErrStudioUnavailable, apiErrors.ErrExternalService, err.Error())
	}

	if !resp.Success || resp.Data == nil || resp.Data.Token == "" {
		logger.WithField("error", resp.Error).Info("studio login rejected")
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, resp.Error)
	}

	return resp.Data.Token, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrSessionExpired, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidCredentials, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidCredentials, "")
	}

	return claims, nil
}
