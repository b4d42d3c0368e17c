package model

import "time"

type Loan struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	EbookID    int64      `json:"ebook_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	IsReturned bool       `json:"is_returned"`
}
