package model

type Ebook struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	AvailableCopies int64  `json:"available_copies"`
}
