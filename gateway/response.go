package gateway

import "encoding/json"

// Envelope status codes used by every backend endpoint.
const (
	StatusSuccess = 1
	StatusError   = 0
)

// NetworkErrorMessage is the message carried by the envelope synthesized
// for transport-level failures.
const NetworkErrorMessage = "Network error. Please check your connection."

// Response is the normalized envelope returned by every Client call.
type Response struct {
	Status  int             `json:"status"`
	Message []string        `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`

	transport bool
}

// OK reports whether the backend answered with a success status.
func (r *Response) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// HasData reports whether the envelope carries a data payload.
func (r *Response) HasData() bool {
	return r != nil && len(r.Data) > 0 && string(r.Data) != "null"
}

// FirstMessage returns the first human-readable message, or fallback when
// the envelope carries none.
func (r *Response) FirstMessage(fallback string) string {
	if r == nil || len(r.Message) == 0 || r.Message[0] == "" {
		return fallback
	}
	return r.Message[0]
}

// TransportFailed reports whether this envelope was synthesized for a
// transport-level failure rather than received from the backend.
func (r *Response) TransportFailed() bool {
	return r != nil && r.transport
}

// DecodeData unmarshals the data payload into v.
func (r *Response) DecodeData(v any) error {
	return json.Unmarshal(r.Data, v)
}

// NewTransportFailure returns the envelope synthesized for transport-level
// failures. Exposed so stub backends can reproduce the gateway's behavior.
func NewTransportFailure() *Response {
	return networkErrorResponse()
}

func networkErrorResponse() *Response {
	return &Response{
		Status:    StatusError,
		Message:   []string{NetworkErrorMessage},
		transport: true,
	}
}
