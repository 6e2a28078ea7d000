package gemini

import (
	"fmt"
	"net/http"
	"strings"
)

// ModelURL composes the endpoint for a model action, e.g.
// {base}/v1beta/models/gemini-2.0-flash:generateContent
func ModelURL(baseURL, version, modelName, action string) string {
	return fmt.Sprintf("%s/%s/models/%s:%s", strings.TrimSuffix(baseURL, "/"), version, modelName, action)
}

// OperationURL composes the polling endpoint for a long-running operation.
// Operation names come back fully qualified (models/.../operations/...).
func OperationURL(baseURL, version, operationName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(baseURL, "/"), version, strings.TrimPrefix(operationName, "/"))
}

// SetupRequestHeader attaches the access key and content type. The media
// URI returned by a finished operation is not fetchable without the same
// key, so downloads go through here too.
func SetupRequestHeader(req *http.Request, apiKey string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)
}
