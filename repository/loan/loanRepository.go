package loanrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kervin2020/Capstone-backend-Elib/model"
)

var (
	// ErrNoCopies means the ebook exists but has no available copy left.
	ErrNoCopies = errors.New("no available copies")
	// ErrNotOwner means the loan belongs to a different user.
	ErrNotOwner = errors.New("loan not owned by user")
	// ErrAlreadyReturned means the loan already left the Active state.
	ErrAlreadyReturned = errors.New("loan already returned")
)

type Repo interface {
	// Checkout decrements the ebook's inventory and inserts the loan as a
	// single transaction. The guarded decrement ensures the last copy can
	// only be taken once under concurrent checkouts.
	Checkout(ctx context.Context, userID, ebookID int64, loanDate, dueDate time.Time) (*model.Loan, error)

	// Return marks the loan returned and restores the copy, in one
	// transaction. Ownership and the one-shot transition are checked under
	// a row lock.
	Return(ctx context.Context, userID, loanID int64, returnDate time.Time) (*model.Loan, error)

	ByID(ctx context.Context, id int64) (*model.Loan, error)
	ListAll(ctx context.Context) ([]model.Loan, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Loan, error)

	// Delete removes the row without touching inventory.
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Checkout(ctx context.Context, userID, ebookID int64, loanDate, dueDate time.Time) (l *model.Loan, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Lock the ebook row; a miss here is "ebook not found".
	var ebID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM ebooks
		WHERE id = $1
		FOR UPDATE`,
		ebookID,
	).Scan(&ebID)
	if err != nil {
		return nil, err
	}

	// Guard: only decrement while a copy remains.
	res, err := tx.ExecContext(ctx, `
		UPDATE ebooks
		SET available_copies = available_copies - 1
		WHERE id = $1
		AND available_copies >= 1`,
		ebookID,
	)
	if err != nil {
		return nil, err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		err = ErrNoCopies
		return nil, err
	}

	l = &model.Loan{
		UserID:   userID,
		EbookID:  ebookID,
		LoanDate: loanDate,
		DueDate:  dueDate,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO loans (user_id, ebook_id, loan_date, due_date, is_returned)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id`,
		userID, ebookID, loanDate, dueDate,
	).Scan(&l.ID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *repo) Return(ctx context.Context, userID, loanID int64, returnDate time.Time) (l *model.Loan, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	l = &model.Loan{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, ebook_id, loan_date, due_date, is_returned
		FROM loans
		WHERE id = $1
		FOR UPDATE`,
		loanID,
	).Scan(&l.ID, &l.UserID, &l.EbookID, &l.LoanDate, &l.DueDate, &l.IsReturned)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		err = ErrNotOwner
		return nil, err
	}
	if l.IsReturned {
		err = ErrAlreadyReturned
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE loans
		SET is_returned = TRUE,
			return_date = $2
		WHERE id = $1`,
		loanID, returnDate,
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE ebooks
		SET available_copies = available_copies + 1
		WHERE id = $1`,
		l.EbookID,
	)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	l.IsReturned = true
	l.ReturnDate = &returnDate
	return l, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Loan, error) {
	l := &model.Loan{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, ebook_id, loan_date, due_date, return_date, is_returned
        FROM loans
        WHERE id = $1`,
		id,
	).Scan(&l.ID, &l.UserID, &l.EbookID, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.IsReturned)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *repo) ListAll(ctx context.Context) ([]model.Loan, error) {
	const q = `
	SELECT id, user_id, ebook_id, loan_date, due_date, return_date, is_returned
	FROM loans
	ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Loan, error) {
	const q = `
	SELECT id, user_id, ebook_id, loan_date, due_date, return_date, is_returned
	FROM loans
	WHERE user_id = $1
	ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func scanLoans(rows *sql.Rows) ([]model.Loan, error) {
	out := []model.Loan{}
	for rows.Next() {
		var l model.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.EbookID, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.IsReturned); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
