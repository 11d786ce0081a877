package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route DELETE /authors/{Id} Author DeleteAuthor
// Deletes an author; refused while books still reference it.
//
//     Produces:
//     - application/json
//
// responses:
//   200: AuthorDeleteResponseOk
//   404: ErrorResponse
//   409: ErrorResponse

// swagger:response AuthorDeleteResponseOk
type AuthorDeleteResponseOk struct {
	// in:body
	Body data.AuthorsResponse
}

// swagger:parameters DeleteAuthor
type AuthorDeleteParams struct {
	// in:path
	Id int64 `json:"Id"`

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
