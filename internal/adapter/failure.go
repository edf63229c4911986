package adapter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-login-widget/models"
	"github.com/go-resty/resty/v2"
)

// responseFailure classifies a non-success HTTP response into the structured
// failure shape the notification channel renders. level "" defaults to the
// visible error level downstream.
func responseFailure(resp *resty.Response, level models.Level) *models.Failure {
	return &models.Failure{
		URL:     finalURL(resp),
		Method:  resp.Request.Method,
		Status:  resp.StatusCode(),
		Message: strings.TrimSpace(string(resp.Body())),
		Level:   level,
	}
}

// finalURL returns the URL the response actually came from, following any
// redirects the client performed.
func finalURL(resp *resty.Response) string {
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		return raw.Request.URL.String()
	}
	return resp.Request.URL
}

func decodeJSON(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("decode %s %s response: %w", resp.Request.Method, resp.Request.URL, err)
	}
	return nil
}
