package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route PUT /books/{Id} Book UpdateBook
// Replaces a book's editable fields and returns the reloaded collection.
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// responses:
//   200: BookPutResponseOk
//   400: ErrorResponse
//   404: ErrorResponse

// swagger:response BookPutResponseOk
type BookPutResponseOk struct {
	// in:body
	Body data.BooksResponse
}

// swagger:parameters UpdateBook
type BookPutParams struct {
	// in:path
	Id int64 `json:"Id"`

	// in:body
	BookPartial data.BookPartial

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
