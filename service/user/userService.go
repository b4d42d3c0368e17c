package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kervin2020/Capstone-backend-Elib/model"
	userrepo "github.com/kervin2020/Capstone-backend-Elib/repository/user"
	"github.com/kervin2020/Capstone-backend-Elib/util/hash"
	jwtutil "github.com/kervin2020/Capstone-backend-Elib/util/jwt"
)

var (
	ErrEmailTaken   = errors.New("email already in use")
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrNotFound     = errors.New("user not found")
)

// tokenTTL is the access-token lifetime handed out at login.
const tokenTTL = time.Hour

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, error)
	Login(ctx context.Context, req model.LoginReq) (string, error)
	List(ctx context.Context) ([]model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, req model.UpdateUserReq) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service {
	return &service{ur: ur, secret: secret}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		IsAdmin:      req.IsAdmin,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if isDuplicateEmail(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)
		return strings.Contains(cn, "users_email") || strings.Contains(msg, "email")
	}
	return false
}

// Login answers the same error for an unknown email and a wrong password so
// credentials cannot be enumerated.
func (s *service) Login(ctx context.Context, req model.LoginReq) (string, error) {
	u, err := s.ur.ByEmail(ctx, req.Email)
	if err != nil {
		return "", ErrInvalidCreds
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return "", ErrInvalidCreds
	}
	return jwtutil.Issue(s.secret, u.ID, tokenTTL)
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.ur.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Update merges the request into the stored row: nil fields keep their
// current value, a present password is re-hashed.
func (s *service) Update(ctx context.Context, id int64, req model.UpdateUserReq) (*model.User, error) {
	u, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hashed
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}

	if err := s.ur.Update(ctx, u); err != nil {
		if isDuplicateEmail(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	aff, err := s.ur.Delete(ctx, id)
	if err != nil {
		return err
	}
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}
