package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route DELETE /books/{Id} Book DeleteBook
// Deletes a book.
//
//     Produces:
//     - application/json
//
// responses:
//   200: BookDeleteResponseOk
//   404: ErrorResponse

// swagger:response BookDeleteResponseOk
type BookDeleteResponseOk struct {
	// in:body
	Body data.BooksResponse
}

// swagger:parameters DeleteBook
type BookDeleteParams struct {
	// in:path
	Id int64 `json:"Id"`

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
