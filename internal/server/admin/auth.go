// Package admin guards the token management commands with the single admin
// credential pair.
package admin

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/nbbackup/internal/common"
	"github.com/dmitrijs2005/nbbackup/internal/logging"
)

// Login is the only accepted admin login.
const Login = "admin"

// Options configure an Authenticator.
//
// When PasswordHash (bcrypt) is set, Password is ignored. RateLimit is in
// requests per second; zero disables limiting.
type Options struct {
	Password     string
	PasswordHash string
	RateLimit    float64
	RateBurst    int
}

type Authenticator struct {
	password []byte
	hash     []byte
	limiter  *rate.Limiter
	logger   logging.Logger
}

func NewAuthenticator(o Options, l logging.Logger) (*Authenticator, error) {
	a := &Authenticator{logger: l.With("module", "admin")}

	switch {
	case o.PasswordHash != "":
		if _, err := bcrypt.Cost([]byte(o.PasswordHash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
		a.hash = []byte(o.PasswordHash)
	case o.Password != "":
		a.password = []byte(o.Password)
	default:
		return nil, fmt.Errorf("%w: admin password", common.ErrMissingField)
	}

	if o.RateLimit > 0 {
		burst := o.RateBurst
		if burst < 1 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(o.RateLimit), burst)
	}
	return a, nil
}

// Check returns nil when login/password are the admin credentials,
// ErrRateLimited when too many attempts arrive, and ErrUnauthorized otherwise.
func (a *Authenticator) Check(ctx context.Context, login, password string) error {
	if a.limiter != nil && !a.limiter.Allow() {
		a.logger.Warn(ctx, "admin rate limit exceeded")
		return common.ErrRateLimited
	}
	if !a.matches(login, password) {
		a.logger.Info(ctx, "admin access denied", "login", login)
		return common.ErrUnauthorized
	}
	return nil
}

func (a *Authenticator) matches(login, password string) bool {
	if login == "" || password == "" {
		return false
	}
	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(Login)) == 1
	if a.hash != nil {
		return bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil && loginOK
	}
	return subtle.ConstantTimeCompare([]byte(password), a.password) == 1 && loginOK
}
