package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route POST /authors Author CreateAuthor
// Creates an author and returns the reloaded collection.
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// responses:
//   201: AuthorPostResponseCreated
//   400: ErrorResponse

// swagger:response AuthorPostResponseCreated
type AuthorPostResponseCreated struct {
	// in:body
	Body data.AuthorsResponse
}

// swagger:parameters CreateAuthor
type AuthorPostParams struct {
	// in:body
	AuthorPartial data.AuthorPartial

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
