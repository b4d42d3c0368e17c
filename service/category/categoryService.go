package categorysvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kervin2020/Capstone-backend-Elib/model"
	categoryrepo "github.com/kervin2020/Capstone-backend-Elib/repository/category"
)

var ErrNotFound = errors.New("category not found")

type Service interface {
	Create(ctx context.Context, name, description string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	ByID(ctx context.Context, id int64) (*model.Category, error)
	Update(ctx context.Context, id int64, name, description *string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r categoryrepo.Repo }

func New(r categoryrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, description string) (*model.Category, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	c := &model.Category{Name: name, Description: description}
	if err := s.r.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]model.Category, error) {
	return s.r.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Category, error) {
	c, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update merges: nil fields keep their stored value.
func (s *service) Update(ctx context.Context, id int64, name, description *string) (*model.Category, error) {
	c, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		c.Name = *name
	}
	if description != nil {
		c.Description = *description
	}
	if err := s.r.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	aff, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if aff == 0 {
		return ErrNotFound
	}
	return nil
}
