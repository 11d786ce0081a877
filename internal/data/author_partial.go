package data

import "encoding/json"

// AuthorPartial carries the editable fields of an author; writes are a
// full replace, so the required fields must always be present
type AuthorPartial struct {
	Name     *string `json:"name,omitempty" validate:"required,min=1"`
	Birthday *Date   `json:"birthday,omitempty" validate:"required"`
	Bio      *string `json:"bio,omitempty"`
}

func (a *AuthorPartial) Validate() error {
	return validateStruct(a)
}

func (a *AuthorPartial) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}

func (a *AuthorPartial) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, a)
}
