package data

import (
	"encoding/json"
	"time"
)

// Author is a writer in the catalog; the json field names match what
// the dashboard frontend expects
type Author struct {
	Id        int64     `json:"id"`
	Name      string    `json:"name"`
	Birthday  Date      `json:"birthday"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Author) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}

func (a *Author) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, a)
}

type AuthorList []*Author

func (a *AuthorList) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}

func (a *AuthorList) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, a)
}
