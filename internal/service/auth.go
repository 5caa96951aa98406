// Package service contains the application services behind the console: session
// lifecycle, authentication, the account directory, authorization and inventory.
package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/model"
)

// SignupMessage is returned to a caller whose account was created and now
// awaits approval.
const SignupMessage = "Signup successful! Please wait for admin approval."

// Admin is the single built-in administrator. It is a constant of the
// deployment, never a stored account, and always wins credential checks.
type Admin struct {
	Name     string
	Email    string
	Password string
}

// Auth validates credentials against the built-in administrator or the account
// directory and owns the session lifecycle.
type Auth struct {
	admin     Admin
	directory *Directory
	session   *Session
	log       *zap.Logger
}

// NewAuth constructs the authentication service.
func NewAuth(admin Admin, directory *Directory, session *Session, log *zap.Logger) *Auth {
	return &Auth{admin: admin, directory: directory, session: session, log: log}
}

// Login authenticates email/password and establishes the session.
// The administrator constant is checked before the directory so a colliding
// stored account can never shadow it. A matching account that is still pending
// fails with errs.ErrPendingApproval; anything else with ErrInvalidCredentials.
func (a *Auth) Login(email, password string) (model.Principal, error) {
	if email == a.admin.Email && password == a.admin.Password {
		p := model.Principal{Name: a.admin.Name, Email: email, Role: model.RoleAdmin}
		if err := a.session.Set(p); err != nil {
			return model.Principal{}, err
		}
		a.log.Info("admin logged in", zap.String("email", email))
		return p, nil
	}

	acct, ok := a.directory.FindByCredentials(email, password)
	if !ok {
		return model.Principal{}, errs.ErrInvalidCredentials
	}
	if acct.Status != model.StatusApproved {
		return model.Principal{}, errs.ErrPendingApproval
	}
	p := model.Principal{Name: acct.Name, Email: acct.Email, Role: model.RoleUser}
	if err := a.session.Set(p); err != nil {
		return model.Principal{}, err
	}
	a.log.Info("user logged in", zap.String("email", email))
	return p, nil
}

// Signup creates a pending account and returns the approval-wait message.
// It never establishes a session. The administrator's email counts as taken:
// an account under it could never log in, so the collision is rejected here.
func (a *Auth) Signup(name, email, password string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", errors.New("empty name/email/password")
	}
	if email == a.admin.Email {
		return "", errs.ErrEmailExists
	}
	if _, err := a.directory.Create(name, email, password, model.StatusPending); err != nil {
		return "", err
	}
	return SignupMessage, nil
}

// AddUser is the administrative shortcut: same uniqueness rules as Signup but
// the account is approved immediately. Callers are expected to sit behind an
// admin-gated surface.
func (a *Auth) AddUser(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return errors.New("empty name/email/password")
	}
	if email == a.admin.Email {
		return errs.ErrEmailExists
	}
	_, err := a.directory.Create(name, email, password, model.StatusApproved)
	return err
}

// Logout clears the session. Logging out with no session is not an error.
func (a *Auth) Logout() error {
	if err := a.session.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
