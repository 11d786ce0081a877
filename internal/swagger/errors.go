package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:response ErrorResponse
type ErrorResponse struct {
	// in:body
	Body data.ErrorResponse
}
