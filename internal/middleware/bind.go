package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"zonewatch/pkg/e"
)

const maxBodyBytes = 64 << 10

// BindJSON decodes exactly one JSON object from the request body. Unknown
// fields and trailing data are rejected.
func BindJSON[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var target T

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return target, e.InvalidField("body", "too large")
		}
		return target, e.InvalidField("body", "invalid JSON")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return target, e.InvalidField("body", "unexpected data after JSON object")
	}
	return target, nil
}
