package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route GET /books Book ListBooks
// Lists all books in id order, each joined with its author's name.
//
//     Produces:
//     - application/json
//
// responses:
//   200: BooksGetResponseOk

// swagger:response BooksGetResponseOk
type BooksGetResponseOk struct {
	// in:body
	Body data.BooksResponse
}
