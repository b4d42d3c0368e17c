package ebooksvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kervin2020/Capstone-backend-Elib/model"
	ebookrepo "github.com/kervin2020/Capstone-backend-Elib/repository/ebook"
)

var ErrNotFound = errors.New("ebook not found")

type Service interface {
	Create(ctx context.Context, title string, copies int64) (*model.Ebook, error)
	List(ctx context.Context) ([]model.Ebook, error)
	ByID(ctx context.Context, id int64) (*model.Ebook, error)
	Update(ctx context.Context, id int64, title *string, copies *int64) (*model.Ebook, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r ebookrepo.Repo }

func New(r ebookrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, title string, copies int64) (*model.Ebook, error) {
	if title == "" || copies < 0 {
		return nil, errors.New("invalid payload")
	}
	e := &model.Ebook{Title: title, AvailableCopies: copies}
	if err := s.r.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) List(ctx context.Context) ([]model.Ebook, error) {
	return s.r.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Ebook, error) {
	e, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Update(ctx context.Context, id int64, title *string, copies *int64) (*model.Ebook, error) {
	e, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		e.Title = *title
	}
	if copies != nil {
		if *copies < 0 {
			return nil, errors.New("invalid payload")
		}
		e.AvailableCopies = *copies
	}
	if err := s.r.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
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
