package transport

import (
	"encoding/json"
	"io"

	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/gin-gonic/gin"
)

// Body is a request body as raw per-field JSON, so handlers can tell an
// absent field from a zero value.
type Body map[string]json.RawMessage

// Has reports whether the field was sent.
func (b Body) Has(field string) bool {
	_, ok := b[field]
	return ok
}

// String returns the field as a string, or "" when absent or not a string.
func (b Body) String(field string) string {
	raw, ok := b[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Bool returns the field as a bool, or false when absent or not a bool.
func (b Body) Bool(field string) bool {
	raw, ok := b[field]
	if !ok {
		return false
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v
}

// Decode unmarshals the whole body into out.
func (b Body) Decode(out any) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// ReadBody parses the request body as a JSON object. Empty, malformed and
// non-object bodies all yield an empty Body rather than an error.
func ReadBody(c *gin.Context) Body {
	body := Body{}
	if c.Request.Body == nil {
		return body
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		return body
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		logging.Log.WithField(requestIDKey, RequestID(c)).Debugf("ignoring unparsable request body: %v", err)
		return Body{}
	}
	if body == nil {
		return Body{}
	}
	return body
}
