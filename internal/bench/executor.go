package bench

import (
	"io"
	"net/http"
	"strings"
	"time"

	"loadcmp/internal/metrics"
)

// execute performs one HTTP request against baseURL+ep.Path and
// captures the outcome as a sample. Transport failures (refused
// connection, DNS, timeout) come back as status-0 samples, never as
// errors. The body, when present, is attached regardless of method,
// GET included.
func execute(client *http.Client, baseURL string, ep *Endpoint, body string) metrics.Sample {
	method := normalizeMethod(ep.Method)

	var payload io.Reader
	if body != "" {
		payload = strings.NewReader(body)
	}

	start := time.Now()

	req, err := http.NewRequest(method, baseURL+ep.Path, payload)
	if err != nil {
		return metrics.Sample{Start: start, End: time.Now(), Endpoint: ep.Path}
	}
	for k, v := range ep.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	end := time.Now()

	if err != nil {
		return metrics.Sample{Start: start, End: end, Endpoint: ep.Path}
	}

	// Size comes from the Content-Length header only. Reading the body
	// to count bytes would skew timing on large responses.
	size := resp.ContentLength
	if size < 0 {
		size = 0
	}
	resp.Body.Close()

	return metrics.Sample{
		Start:    start,
		End:      end,
		Status:   resp.StatusCode,
		Bytes:    size,
		Endpoint: ep.Path,
		Success:  resp.StatusCode >= 200 && resp.StatusCode < 300,
	}
}

// Unrecognized methods fall back to GET.
func normalizeMethod(m string) string {
	switch strings.ToUpper(m) {
	case http.MethodGet:
		return http.MethodGet
	case http.MethodPost:
		return http.MethodPost
	case http.MethodPut:
		return http.MethodPut
	case http.MethodDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}
