package loansvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kervin2020/Capstone-backend-Elib/model"
	loanrepo "github.com/kervin2020/Capstone-backend-Elib/repository/loan"
)

type mockRepo struct {
	checkoutFn   func(ctx context.Context, userID, ebookID int64, loanDate, dueDate time.Time) (*model.Loan, error)
	returnFn     func(ctx context.Context, userID, loanID int64, returnDate time.Time) (*model.Loan, error)
	byIDFn       func(ctx context.Context, id int64) (*model.Loan, error)
	listAllFn    func(ctx context.Context) ([]model.Loan, error)
	listByUserFn func(ctx context.Context, userID int64) ([]model.Loan, error)
	deleteFn     func(ctx context.Context, id int64) (int64, error)
}

var _ loanrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Checkout(ctx context.Context, userID, ebookID int64, loanDate, dueDate time.Time) (*model.Loan, error) {
	return m.checkoutFn(ctx, userID, ebookID, loanDate, dueDate)
}
func (m *mockRepo) Return(ctx context.Context, userID, loanID int64, returnDate time.Time) (*model.Loan, error) {
	return m.returnFn(ctx, userID, loanID, returnDate)
}
func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Loan, error) {
	return m.byIDFn(ctx, id)
}
func (m *mockRepo) ListAll(ctx context.Context) ([]model.Loan, error) { return m.listAllFn(ctx) }
func (m *mockRepo) ListByUser(ctx context.Context, userID int64) ([]model.Loan, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *mockRepo) Delete(ctx context.Context, id int64) (int64, error) { return m.deleteFn(ctx, id) }

type staticAuthz struct{ admins map[int64]bool }

func (a staticAuthz) RequireAdmin(ctx context.Context, callerID int64) error { return nil }
func (a staticAuthz) RequireAccount(ctx context.Context, callerID int64, ownerID *int64) error {
	return nil
}
func (a staticAuthz) IsAdmin(ctx context.Context, callerID int64) (bool, error) {
	return a.admins[callerID], nil
}

// three users, user 1 is admin; five loans spread across them
func seedLoans() []model.Loan {
	return []model.Loan{
		{ID: 1, UserID: 1, EbookID: 10},
		{ID: 2, UserID: 2, EbookID: 10},
		{ID: 3, UserID: 2, EbookID: 11},
		{ID: 4, UserID: 3, EbookID: 12},
		{ID: 5, UserID: 3, EbookID: 10},
	}
}

func filterByUser(all []model.Loan, userID int64) []model.Loan {
	out := []model.Loan{}
	for _, l := range all {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}

func newListService() Service {
	all := seedLoans()
	m := &mockRepo{
		listAllFn: func(ctx context.Context) ([]model.Loan, error) { return all, nil },
		listByUserFn: func(ctx context.Context, userID int64) ([]model.Loan, error) {
			return filterByUser(all, userID), nil
		},
	}
	return New(m, staticAuthz{admins: map[int64]bool{1: true}})
}

func TestList_AdminSeesEverything(t *testing.T) {
	rows, err := newListService().List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 5)
}

func TestList_NonAdminSeesOnlyOwn(t *testing.T) {
	rows, err := newListService().List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, l := range rows {
		require.Equal(t, int64(2), l.UserID)
	}
}

func TestGet_OwnershipMatrix(t *testing.T) {
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Loan, error) {
			if id != 2 {
				return nil, sql.ErrNoRows
			}
			return &model.Loan{ID: 2, UserID: 2}, nil
		},
	}
	svc := New(m, staticAuthz{admins: map[int64]bool{1: true}})
	ctx := context.Background()

	l, err := svc.Get(ctx, 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), l.ID)

	_, err = svc.Get(ctx, 1, 2) // admin on a foreign loan
	require.NoError(t, err)

	_, err = svc.Get(ctx, 3, 2) // stranger
	require.Equal(t, ErrForbidden, Code(err))

	_, err = svc.Get(ctx, 2, 99)
	require.Equal(t, ErrLoanNotFound, Code(err))
}

func TestCheckout_DueDateIsFourteenDaysOut(t *testing.T) {
	var gotLoan, gotDue time.Time
	m := &mockRepo{
		checkoutFn: func(ctx context.Context, userID, ebookID int64, loanDate, dueDate time.Time) (*model.Loan, error) {
			gotLoan, gotDue = loanDate, dueDate
			return &model.Loan{ID: 1, UserID: userID, EbookID: ebookID, LoanDate: loanDate, DueDate: dueDate}, nil
		},
	}
	svc := New(m, staticAuthz{})

	l, err := svc.Checkout(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Equal(t, gotLoan.Add(LoanPeriod), gotDue)
	require.WithinDuration(t, time.Now().UTC(), l.LoanDate, time.Minute)
	require.False(t, l.IsReturned)
}

func TestCheckout_ErrorMapping(t *testing.T) {
	missing := &mockRepo{
		checkoutFn: func(ctx context.Context, userID, ebookID int64, _, _ time.Time) (*model.Loan, error) {
			return nil, sql.ErrNoRows
		},
	}
	_, err := New(missing, staticAuthz{}).Checkout(context.Background(), 2, 99)
	require.Equal(t, ErrEbookNotFound, Code(err))

	empty := &mockRepo{
		checkoutFn: func(ctx context.Context, userID, ebookID int64, _, _ time.Time) (*model.Loan, error) {
			return nil, loanrepo.ErrNoCopies
		},
	}
	_, err = New(empty, staticAuthz{}).Checkout(context.Background(), 2, 10)
	require.Equal(t, ErrNoCopies, Code(err))
}

func TestReturn_ErrorMapping(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		repoErr error
		want    ErrCode
	}{
		{sql.ErrNoRows, ErrLoanNotFound},
		{loanrepo.ErrNotOwner, ErrNotOwner},
		{loanrepo.ErrAlreadyReturned, ErrAlreadyReturned},
	}
	for _, tc := range cases {
		m := &mockRepo{
			returnFn: func(ctx context.Context, userID, loanID int64, _ time.Time) (*model.Loan, error) {
				return nil, tc.repoErr
			},
		}
		_, err := New(m, staticAuthz{}).Return(ctx, 2, 1)
		require.Equal(t, tc.want, Code(err))
	}
}

func TestReturn_SetsTerminalState(t *testing.T) {
	m := &mockRepo{
		returnFn: func(ctx context.Context, userID, loanID int64, returnDate time.Time) (*model.Loan, error) {
			return &model.Loan{ID: loanID, UserID: userID, IsReturned: true, ReturnDate: &returnDate}, nil
		},
	}
	l, err := New(m, staticAuthz{}).Return(context.Background(), 2, 1)
	require.NoError(t, err)
	require.True(t, l.IsReturned)
	require.NotNil(t, l.ReturnDate)
}

func TestDelete_NotFound(t *testing.T) {
	m := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) (int64, error) { return 0, nil },
	}
	err := New(m, staticAuthz{}).Delete(context.Background(), 99)
	require.Equal(t, ErrLoanNotFound, Code(err))
}
