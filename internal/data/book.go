package data

import (
	"encoding/json"
	"time"
)

// Book is attributed to exactly one author; AuthorName is joined from
// the authors table at read time, never stored
type Book struct {
	Id          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate Date      `json:"releaseDate"`
	Pages       int64     `json:"pages"`
	AuthorId    int64     `json:"authorId"`
	AuthorName  string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (b *Book) MarshalBinary() ([]byte, error) {
	return json.Marshal(b)
}

func (b *Book) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, b)
}

type BookList []*Book

func (b *BookList) MarshalBinary() ([]byte, error) {
	return json.Marshal(b)
}

func (b *BookList) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, b)
}
