package client

import (
	"encoding/json"

	internalhttp "github.com/pipedream-labs/connect-go/internal/http"
	"github.com/pipedream-labs/connect-go/pkg/connect"
)

// maxBodyExcerpt bounds the response body carried on decode errors.
const maxBodyExcerpt = 512

// decodeJSON decodes a 2xx response body into v. A malformed body is an API
// failure, not a caller error, so it maps to *connect.APIError.
func decodeJSON(resp *internalhttp.Response, v interface{}) error {
	err := json.Unmarshal(resp.Body, v)
	if err != nil {
		return &connect.APIError{
			StatusCode: resp.StatusCode,
			Message:    "malformed response body: " + err.Error(),
			Body:       bodyExcerpt(resp.Body),
		}
	}

	return nil
}

// unexpectedResponse reports a well-formed body missing keys the endpoint is
// documented to return.
func unexpectedResponse(resp *internalhttp.Response, operation string) error {
	return &connect.APIError{
		StatusCode: resp.StatusCode,
		Message:    "unexpected response format for " + operation,
		Body:       bodyExcerpt(resp.Body),
	}
}

func bodyExcerpt(body []byte) string {
	if len(body) > maxBodyExcerpt {
		body = body[:maxBodyExcerpt]
	}

	return string(body)
}
