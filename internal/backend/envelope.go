package backend

import (
	"encoding/json"
	"fmt"
)

// queryPayload is the JSON body of a find-events request.
type queryPayload struct {
	InterestDescription string `json:"interest_description"`
	Location            string `json:"location"`
}

// ResponseEnvelope is the JSON object returned by the event search service.
// On success it carries the formatted results text; a logical failure is
// signaled through a non-empty Error field even under a 2xx status. Detail
// is the alternate error field emitted by common backend frameworks on
// non-success statuses.
type ResponseEnvelope struct {
	ResultsText string `json:"results_text"`
	Error       string `json:"error"`
	Detail      string `json:"detail"`
}

// errorMessage extracts a human-readable error from a non-success response
// body. It checks the envelope's error field first, then the generic detail
// field, and falls back to a message containing the HTTP status code when
// the body carries no parseable error.
func errorMessage(body []byte, statusCode int) string {
	var env ResponseEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != "" {
			return env.Error
		}
		if env.Detail != "" {
			return env.Detail
		}
	}
	return fmt.Sprintf("event search service returned HTTP %d", statusCode)
}
