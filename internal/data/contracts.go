package data

import "encoding/json"

const (
	RouteAuthors    string = "/authors"
	RouteAuthorsId  string = RouteAuthors + "/{" + PathId + "}"
	RouteAuthorsIdf string = RouteAuthors + "/%d"
	RouteBooks      string = "/books"
	RouteBooksId    string = RouteBooks + "/{" + PathId + "}"
	RouteBooksIdf   string = RouteBooks + "/%d"
	RouteHealth     string = "/health"
	RouteCache      string = "/cache"
	RouteCounters   string = "/cache/counters"
	RouteTimers     string = "/timers"
)

const PathId string = "Id"

const (
	HeaderAvailabilityZone  string = "X-Availability-Zone"
	UnknownAvailabilityZone string = "Unknown AZ"
)

const (
	HealthStatusHealthy string = "Healthy"
	HealthStatusError   string = "Error"
)

// AuthorsResponse is the envelope for every author endpoint; mutations
// carry a human-readable message alongside the reloaded collection
type AuthorsResponse struct {
	Authors []*Author `json:"authors"`
	Message string    `json:"message,omitempty"`
}

// MarshalJSON keeps an empty collection encoded as [] rather than null
// since the frontend iterates the list unguarded
func (a *AuthorsResponse) MarshalJSON() ([]byte, error) {
	type alias AuthorsResponse

	if a.Authors == nil {
		a.Authors = []*Author{}
	}
	return json.Marshal((*alias)(a))
}

type BooksResponse struct {
	Books   []*Book `json:"books"`
	Message string  `json:"message,omitempty"`
}

func (b *BooksResponse) MarshalJSON() ([]byte, error) {
	type alias BooksResponse

	if b.Books == nil {
		b.Books = []*Book{}
	}
	return json.Marshal((*alias)(b))
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	AvailabilityZone string `json:"availabilityZone,omitempty"`
	InstanceId       string `json:"instanceId,omitempty"`
	PublicIp         string `json:"publicIp,omitempty"`
	Message          string `json:"message,omitempty"`
}

// InstanceMetadata is the product of a single metadata probe; it's
// diagnostic only and never touches the crud data path
type InstanceMetadata struct {
	AvailabilityZone string `json:"availability_zone"`
	InstanceId       string `json:"instance_id"`
	PublicIp         string `json:"public_ip"`
}
