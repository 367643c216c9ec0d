package testing

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// PerformRequest Helper for performing requests in tests. A string body is
// sent as-is, anything else is marshalled to JSON.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	reqBody := &bytes.Buffer{}
	switch b := body.(type) {
	case nil:
	case string:
		reqBody.WriteString(b)
	default:
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
		reqBody.Write(jsonBytes)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

// Bearer returns the Authorization header for token.
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// DecodeBody unmarshals a JSON response into a generic map, panicking on bad JSON.
func DecodeBody(res *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		panic("failed to unmarshal response body: " + err.Error() + ": " + res.Body.String())
	}
	return out
}
