package categoryrepo

import (
	"context"
	"database/sql"

	"github.com/kervin2020/Capstone-backend-Elib/model"
)

type Repo interface {
	Create(ctx context.Context, c *model.Category) error
	ByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, c *model.Category) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO categories(name, description)
		VALUES ($1,$2)
		RETURNING id`,
		c.Name, c.Description,
	).Scan(&c.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Category, error) {
	c := &model.Category{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, name, COALESCE(description, '')
        FROM categories
        WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) List(ctx context.Context) ([]model.Category, error) {
	const q = `
	SELECT id, name, COALESCE(description, '')
	FROM categories
	ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, c *model.Category) error {
	const q = `
	UPDATE categories
	SET name = $2, description = $3
	WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.Description)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
