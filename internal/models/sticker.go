package models

type Sticker struct {
	ID     int    `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Image  string `json:"image" db:"image"`     // stored file name or object URL
	UserID string `json:"user_id" db:"user_id"` // uploader login handle
	Price  int    `json:"price" db:"price"`
}
