package data

import "encoding/json"

type BookPartial struct {
	Title       *string `json:"title,omitempty" validate:"required,min=1"`
	Description *string `json:"description,omitempty"`
	ReleaseDate *Date   `json:"releaseDate,omitempty" validate:"required"`
	Pages       *int64  `json:"pages,omitempty" validate:"required,gte=1"`
	AuthorId    *int64  `json:"authorId,omitempty" validate:"required,gte=1"`
}

func (b *BookPartial) Validate() error {
	return validateStruct(b)
}

func (b *BookPartial) MarshalBinary() ([]byte, error) {
	return json.Marshal(b)
}

func (b *BookPartial) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, b)
}
