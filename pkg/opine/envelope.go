package opine

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope status tags.
const (
	statusOK    = "ok"
	statusError = "error"
)

// envelope is the wire-level wrapper every API response carries. On
// success the payload fields sit alongside "status" in the same object;
// on error an optional "message" field carries detail.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Decode interprets a response body against the tagged envelope and
// reconciles it with the HTTP status code.
//
// The envelope tag and the status code are two independent signals that
// must corroborate. A success tag with a non-2xx status, or an error tag
// with a 2xx status, is a ProtocolError, not taken at face value. An
// error tag on a failing status is an APIError. A body that does not
// deserialize wraps ErrBadJSONResponse and is never retried.
func Decode[T any](body []byte, statusCode int) (*T, error) {
	var env envelope

	err := json.Unmarshal(body, &env)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadJSONResponse, err)
	}

	success := statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices

	switch env.Status {
	case statusOK:
		if !success {
			return nil, &ProtocolError{StatusCode: statusCode}
		}

		var payload T

		err := json.Unmarshal(body, &payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadJSONResponse, err)
		}

		return &payload, nil

	case statusError:
		if success {
			return nil, &ProtocolError{StatusCode: statusCode, Message: env.Message}
		}

		return nil, &APIError{StatusCode: statusCode, Message: env.Message}

	default:
		return nil, fmt.Errorf("%w: unknown envelope status %q", ErrBadJSONResponse, env.Status)
	}
}

// DecodeEmpty checks an envelope-only response (operations with no
// payload, such as deletes) against the HTTP status code.
func DecodeEmpty(body []byte, statusCode int) error {
	_, err := Decode[struct{}](body, statusCode)

	return err
}
