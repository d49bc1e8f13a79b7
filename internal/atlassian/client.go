// Package atlassian holds thin REST clients for Jira and Bitbucket Cloud.
// Clients are built per request from the caller's decrypted credentials.
package atlassian

import (
	"io"
	"net/http"
	"strings"

	"devboard/internal/domain"
	"devboard/internal/metrics"
)

// NormalizeBaseURL defaults the scheme to https when the stored Jira URL is
// a bare domain.
func NormalizeBaseURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return strings.TrimSuffix(raw, "/")
	}
	return "https://" + strings.TrimSuffix(raw, "/")
}

// getJSON performs one basic-auth GET and returns the response body.
// Non-2xx responses become UpstreamError carrying status and body; a 2xx
// response with an empty body becomes EmptyResponseError.
func getJSON(client *http.Client, service string, req *http.Request, user, secret string) ([]byte, error) {
	req.SetBasicAuth(user, secret)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(service, "transport_error").Inc()
		return nil, &domain.UpstreamError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(service, "transport_error").Inc()
		return nil, &domain.UpstreamError{Service: service, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequests.WithLabelValues(service, "upstream_error").Inc()
		return nil, &domain.UpstreamError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if len(body) == 0 {
		metrics.UpstreamRequests.WithLabelValues(service, "empty_response").Inc()
		return nil, &domain.EmptyResponseError{Service: service}
	}

	metrics.UpstreamRequests.WithLabelValues(service, "ok").Inc()
	return body, nil
}
