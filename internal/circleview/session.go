package circleview

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Session identifies the logged-in user of the page. It is passed to the
// view-model explicitly.
type Session struct {
	UserID      string
	AccessToken string
}

var errNoSubject = errors.New("token has no subject")

// SessionFromToken reads the user id from the token subject. The signature
// is not checked here: the backend verifies it on every request.
func SessionFromToken(token string) (Session, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Session{}, fmt.Errorf("parse access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return Session{}, fmt.Errorf("parse access token: %w", err)
	}
	if sub == "" {
		return Session{}, errNoSubject
	}

	return Session{UserID: sub, AccessToken: token}, nil
}
