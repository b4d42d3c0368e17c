package loansvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kervin2020/Capstone-backend-Elib/model"
	loanrepo "github.com/kervin2020/Capstone-backend-Elib/repository/loan"
	"github.com/kervin2020/Capstone-backend-Elib/service/authz"
)

// errors used by controllers

type ErrCode string

const (
	ErrEbookNotFound   ErrCode = "EBOOK_NOT_FOUND"
	ErrLoanNotFound    ErrCode = "LOAN_NOT_FOUND"
	ErrNoCopies        ErrCode = "NO_COPIES"
	ErrNotOwner        ErrCode = "NOT_OWNER"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
	ErrForbidden       ErrCode = "FORBIDDEN"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// LoanPeriod is the fixed borrowing window; the due date is the loan date
// plus this.
const LoanPeriod = 14 * 24 * time.Hour

type Service interface {
	// Checkout borrows one copy of an ebook for the user.
	Checkout(ctx context.Context, userID, ebookID int64) (*model.Loan, error)

	// Return moves an active loan to Returned. Owner only; an admin cannot
	// return on another user's behalf.
	Return(ctx context.Context, userID, loanID int64) (*model.Loan, error)

	// List shows every loan to an admin and only the caller's own loans
	// otherwise.
	List(ctx context.Context, callerID int64) ([]model.Loan, error)

	// Get fetches one loan; the caller must own it or be an admin.
	Get(ctx context.Context, callerID, loanID int64) (*model.Loan, error)

	// ListForUser lists a given user's loans. Access is the controller's
	// concern.
	ListForUser(ctx context.Context, userID int64) ([]model.Loan, error)

	// Delete removes the loan row. Inventory is not adjusted: deleting an
	// active loan permanently loses that copy. Historical behavior, kept.
	Delete(ctx context.Context, loanID int64) error
}

type service struct {
	r  loanrepo.Repo
	az authz.Authorizer
}

func New(r loanrepo.Repo, az authz.Authorizer) Service {
	return &service{r: r, az: az}
}

func (s *service) Checkout(ctx context.Context, userID, ebookID int64) (*model.Loan, error) {
	now := time.Now().UTC()
	l, err := s.r.Checkout(ctx, userID, ebookID, now, now.Add(LoanPeriod))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, makeErr(ErrEbookNotFound)
		case errors.Is(err, loanrepo.ErrNoCopies):
			return nil, makeErr(ErrNoCopies)
		}
		return nil, err
	}
	return l, nil
}

func (s *service) Return(ctx context.Context, userID, loanID int64) (*model.Loan, error) {
	l, err := s.r.Return(ctx, userID, loanID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, makeErr(ErrLoanNotFound)
		case errors.Is(err, loanrepo.ErrNotOwner):
			return nil, makeErr(ErrNotOwner)
		case errors.Is(err, loanrepo.ErrAlreadyReturned):
			return nil, makeErr(ErrAlreadyReturned)
		}
		return nil, err
	}
	return l, nil
}

func (s *service) List(ctx context.Context, callerID int64) ([]model.Loan, error) {
	admin, err := s.az.IsAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if admin {
		return s.r.ListAll(ctx)
	}
	return s.r.ListByUser(ctx, callerID)
}

func (s *service) Get(ctx context.Context, callerID, loanID int64) (*model.Loan, error) {
	l, err := s.r.ByID(ctx, loanID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrLoanNotFound)
	}
	if err != nil {
		return nil, err
	}
	if l.UserID != callerID {
		admin, err := s.az.IsAdmin(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, makeErr(ErrForbidden)
		}
	}
	return l, nil
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]model.Loan, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, loanID int64) error {
	aff, err := s.r.Delete(ctx, loanID)
	if err != nil {
		return err
	}
	if aff == 0 {
		return makeErr(ErrLoanNotFound)
	}
	return nil
}
