package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire format version. Clients check this field before
// parsing the rest of the payload, so it must stay "v" and stay an integer.
const envelopeVersion = 1

// envelope is the response wrapper shared by every endpoint.
type envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope.
// Register it on huma.Config.Transformers before creating the API.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if strings.HasPrefix(status, "2") {
		return &envelope{V: envelopeVersion, Success: true, Data: v}, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		e := &envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
		}
		if apiErr.Code != "" {
			e.Code = apiErr.Code
			e.Message = apiErr.Message
			e.Details = apiErr.Details
		}
		return e, nil
	}

	if err, ok := v.(error); ok {
		return &envelope{V: envelopeVersion, Success: false, Error: err.Error()}, nil
	}

	return &envelope{V: envelopeVersion, Success: false, Data: v}, nil
}
