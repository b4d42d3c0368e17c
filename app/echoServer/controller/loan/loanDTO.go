package loan

type CreateLoanReq struct {
	EbookID int64 `json:"ebook_id" validate:"required,gt=0"`
}
