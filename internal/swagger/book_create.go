package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route POST /books Book CreateBook
// Creates a book attributed to an existing author.
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// responses:
//   201: BookPostResponseCreated
//   400: ErrorResponse

// swagger:response BookPostResponseCreated
type BookPostResponseCreated struct {
	// in:body
	Body data.BooksResponse
}

// swagger:parameters CreateBook
type BookPostParams struct {
	// in:body
	BookPartial data.BookPartial

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
