package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route GET /authors Author ListAuthors
// Lists all authors in id order.
//
//     Produces:
//     - application/json
//
// responses:
//   200: AuthorsGetResponseOk

// swagger:response AuthorsGetResponseOk
type AuthorsGetResponseOk struct {
	// in:body
	Body data.AuthorsResponse
}
