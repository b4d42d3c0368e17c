// Package authz holds the admin / owner-or-admin decision shared by every
// resource handler. The two entry points deliberately disagree on how an
// unresolvable caller is reported: the user-resource call sites answer 404
// while the category and loan call sites fold it into the 403. That split is
// historical behavior callers depend on, so both flavors are kept.
package authz

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/kervin2020/Capstone-backend-Elib/model"
)

// Error is an authorization verdict with its HTTP rendering.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

var (
	ErrAdminOnly = &Error{Status: http.StatusForbidden, Msg: "access denied: admin only"}
	ErrNotOwner  = &Error{Status: http.StatusForbidden, Msg: "access denied: not the account owner or an admin"}
	ErrNoCaller  = &Error{Status: http.StatusNotFound, Msg: "user not found"}
)

// UserSource resolves identities; a miss is sql.ErrNoRows.
type UserSource interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Authorizer interface {
	// RequireAdmin allows admins only. An unresolvable caller is denied
	// with the same 403 as a non-admin.
	RequireAdmin(ctx context.Context, callerID int64) error

	// RequireAccount guards user-scoped resources. An unresolvable caller
	// yields ErrNoCaller (404). A nil ownerID demands admin; otherwise the
	// caller must own the account or be an admin.
	RequireAccount(ctx context.Context, callerID int64, ownerID *int64) error

	// IsAdmin reports the caller's role; an unresolvable caller is not an
	// admin.
	IsAdmin(ctx context.Context, callerID int64) (bool, error)
}

type authorizer struct{ users UserSource }

func New(users UserSource) Authorizer { return &authorizer{users: users} }

func (a *authorizer) resolve(ctx context.Context, id int64) (*model.User, error) {
	u, err := a.users.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (a *authorizer) RequireAdmin(ctx context.Context, callerID int64) error {
	u, err := a.resolve(ctx, callerID)
	if err != nil {
		return err
	}
	if u == nil || !u.IsAdmin {
		return ErrAdminOnly
	}
	return nil
}

func (a *authorizer) RequireAccount(ctx context.Context, callerID int64, ownerID *int64) error {
	u, err := a.resolve(ctx, callerID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNoCaller
	}
	if ownerID == nil {
		if !u.IsAdmin {
			return ErrAdminOnly
		}
		return nil
	}
	if !u.IsAdmin && u.ID != *ownerID {
		return ErrNotOwner
	}
	return nil
}

func (a *authorizer) IsAdmin(ctx context.Context, callerID int64) (bool, error) {
	u, err := a.resolve(ctx, callerID)
	if err != nil {
		return false, err
	}
	return u != nil && u.IsAdmin, nil
}
