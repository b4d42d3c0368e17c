// service/category/category_service_test.go
package categorysvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/kervin2020/Capstone-backend-Elib/model"
	categorysvc "github.com/kervin2020/Capstone-backend-Elib/service/category"
)

type repoMock struct {
	createFn func(ctx context.Context, c *model.Category) error
	byIDFn   func(ctx context.Context, id int64) (*model.Category, error)
	listFn   func(ctx context.Context) ([]model.Category, error)
	updateFn func(ctx context.Context, c *model.Category) error
	deleteFn func(ctx context.Context, id int64) (int64, error)
}

func (m *repoMock) Create(ctx context.Context, c *model.Category) error { return m.createFn(ctx, c) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Category, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.Category, error) { return m.listFn(ctx) }
func (m *repoMock) Update(ctx context.Context, c *model.Category) error {
	return m.updateFn(ctx, c)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (int64, error) { return m.deleteFn(ctx, id) }

func TestCreate_Validation(t *testing.T) {
	s := categorysvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), "", "whatever"); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestCreate_DescriptionDefaultsToEmpty(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, c *model.Category) error {
			c.ID = 7
			return nil
		},
	}
	s := categorysvc.New(m)
	c, err := s.Create(context.Background(), "Fiction", "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if c.ID != 7 || c.Name != "Fiction" || c.Description != "" {
		t.Fatalf("got %+v; want id=7 name=Fiction description=\"\"", c)
	}
}

func TestByID_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Category, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := categorysvc.New(m)
	if _, err := s.ByID(context.Background(), 99); !errors.Is(err, categorysvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Category, error) {
			return &model.Category{ID: 1, Name: "Fiction", Description: "stories"}, nil
		},
		updateFn: func(ctx context.Context, c *model.Category) error { return nil },
	}
	s := categorysvc.New(m)

	desc := "made-up stories"
	c, err := s.Update(context.Background(), 1, nil, &desc)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if c.Name != "Fiction" || c.Description != "made-up stories" {
		t.Fatalf("merge wrong: %+v", c)
	}
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) (int64, error) { return 0, nil },
	}
	s := categorysvc.New(m)
	if err := s.Delete(context.Background(), 99); !errors.Is(err, categorysvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}
