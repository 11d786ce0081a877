package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route PUT /authors/{Id} Author UpdateAuthor
// Replaces an author's editable fields and returns the reloaded collection.
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// responses:
//   200: AuthorPutResponseOk
//   400: ErrorResponse
//   404: ErrorResponse

// swagger:response AuthorPutResponseOk
type AuthorPutResponseOk struct {
	// in:body
	Body data.AuthorsResponse
}

// swagger:parameters UpdateAuthor
type AuthorPutParams struct {
	// in:path
	Id int64 `json:"Id"`

	// in:body
	AuthorPartial data.AuthorPartial

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
