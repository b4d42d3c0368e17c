package ebook

type CreateEbookReq struct {
	Title           string `json:"title" validate:"required"`
	AvailableCopies int64  `json:"available_copies" validate:"gte=0"`
}

type UpdateEbookReq struct {
	Title           *string `json:"title"`
	AvailableCopies *int64  `json:"available_copies"`
}
