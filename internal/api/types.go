package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadResponse is returned by the upload relay. URL is canonical for both
// transports; SecureURL repeats it on the base64 path for older clients.
type UploadResponse struct {
	URL       string `json:"url"`
	SecureURL string `json:"secure_url,omitempty"`
	PublicID  string `json:"public_id,omitempty"`
}

// ImageURLRequest asks the server to classify an already uploaded image.
type ImageURLRequest struct {
	ImageURL string `json:"image_url"`
}

// HealthResponse summarizes server readiness.
type HealthResponse struct {
	Status       string             `json:"status"`
	Version      string             `json:"version,omitempty"`
	Time         string             `json:"time"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// DependencyStatus captures availability of an external collaborator.
type DependencyStatus struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// ListResponse wraps collection payloads.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewList wraps items, never encoding a null slice.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}
