package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// BodyGuardStep caps mutating API request bodies and rejects unparseable
// JSON with 400 before any downstream work. The body is re-wrapped so the
// next hop can still read it.
func BodyGuardStep(maxBytes int) Step {
	return func(r *http.Request) (*http.Request, *StepResponse) {
		if safeMethod(r.Method) || r.Body == nil || r.Body == http.NoBody {
			return nil, nil
		}
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "application/json") {
			return nil, nil
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, int64(maxBytes)+1))
		if err != nil {
			return nil, &StepResponse{Status: http.StatusBadRequest, Message: "Unreadable request body"}
		}
		if len(body) > maxBytes {
			return nil, &StepResponse{Status: http.StatusRequestEntityTooLarge, Message: "Request body too large"}
		}
		if len(body) > 0 && !json.Valid(body) {
			return nil, &StepResponse{Status: http.StatusBadRequest, Message: "Malformed JSON body"}
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		return r, nil
	}
}
