package ebookrepo

import (
	"context"
	"database/sql"

	"github.com/kervin2020/Capstone-backend-Elib/model"
)

type Repo interface {
	Create(ctx context.Context, e *model.Ebook) error
	ByID(ctx context.Context, id int64) (*model.Ebook, error)
	List(ctx context.Context) ([]model.Ebook, error)
	Update(ctx context.Context, e *model.Ebook) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, e *model.Ebook) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO ebooks(title, available_copies)
		VALUES ($1,$2)
		RETURNING id`,
		e.Title, e.AvailableCopies,
	).Scan(&e.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Ebook, error) {
	e := &model.Ebook{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, title, available_copies
        FROM ebooks
        WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Title, &e.AvailableCopies)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repo) List(ctx context.Context) ([]model.Ebook, error) {
	const q = `
	SELECT id, title, available_copies
	FROM ebooks
	ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Ebook{}
	for rows.Next() {
		var e model.Ebook
		if err := rows.Scan(&e.ID, &e.Title, &e.AvailableCopies); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, e *model.Ebook) error {
	const q = `
	UPDATE ebooks
	SET title = $2, available_copies = $3
	WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, e.ID, e.Title, e.AvailableCopies)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ebooks WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
