package domain

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is a signed-in studio console session. The access token is the
// backend bearer token used for every studio API call made on its behalf.
type Session struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AccessToken string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Identity changes whenever the signed-in user or their token changes.
func (s *Session) Identity() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%d:%s", s.UserID, s.AccessToken)
}

func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// Claims are the studio backend access token claims the console relies on.
type Claims struct {
	UserID    int    `json:"user_id"`
	UserName  string `json:"name"`
	UserEmail string `json:"email"`
	jwt.RegisteredClaims
}
