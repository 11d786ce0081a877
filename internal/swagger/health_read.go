package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route GET /health Health ReadHealth
// Probes the instance metadata service and reports identity details.
//
//     Produces:
//     - application/json
//
// responses:
//   200: HealthGetResponseOk
//   500: HealthGetResponseError

// swagger:response HealthGetResponseOk
type HealthGetResponseOk struct {
	// in:header
	AvailabilityZone string `json:"X-Availability-Zone"`

	// in:body
	Body data.HealthResponse
}

// swagger:response HealthGetResponseError
type HealthGetResponseError struct {
	// in:header
	AvailabilityZone string `json:"X-Availability-Zone"`

	// in:body
	Body data.HealthResponse
}
