package types

// MessageResponse is the uniform acknowledgment and error body.
type MessageResponse struct {
	Message string `json:"message"`
}
