package bench

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient() *http.Client {
	return &http.Client{Timeout: 2 * time.Second}
}

func TestExecuteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello world"))
	}))
	defer srv.Close()

	ep := Endpoint{Path: "/ok", Method: "GET", Weight: 1}
	s := execute(testClient(), srv.URL, &ep, "")

	if !s.Success {
		t.Error("expected success")
	}
	if s.Status != http.StatusOK {
		t.Errorf("status = %d, want 200", s.Status)
	}
	if s.Bytes != int64(len("hello world")) {
		t.Errorf("bytes = %d, want %d", s.Bytes, len("hello world"))
	}
	if s.Endpoint != "/ok" {
		t.Errorf("endpoint = %q, want /ok", s.Endpoint)
	}
	if s.End.Before(s.Start) {
		t.Error("end instant precedes start")
	}
}

func TestExecuteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ep := Endpoint{Path: "/err", Method: "GET", Weight: 1}
	s := execute(testClient(), srv.URL, &ep, "")

	if s.Success {
		t.Error("5xx must not count as success")
	}
	if s.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", s.Status)
	}
}

func TestExecuteTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	ep := Endpoint{Path: "/gone", Method: "GET", Weight: 1}
	s := execute(testClient(), srv.URL, &ep, "")

	if s.Success {
		t.Error("transport failure must not count as success")
	}
	if s.Status != 0 {
		t.Errorf("status = %d, want 0 for transport failure", s.Status)
	}
	if s.Bytes != 0 {
		t.Errorf("bytes = %d, want 0", s.Bytes)
	}
}

func TestExecuteSendsHeadersAndBody(t *testing.T) {
	var gotMethod, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	}))
	defer srv.Close()

	ep := Endpoint{
		Path:    "/submit",
		Method:  "POST",
		Headers: map[string]string{"Authorization": "Bearer demo-token"},
		Weight:  1,
	}
	execute(testClient(), srv.URL, &ep, `{"q":1}`)

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotAuth != "Bearer demo-token" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody != `{"q":1}` {
		t.Errorf("body = %q", gotBody)
	}
}

func TestExecuteBodyOnGET(t *testing.T) {
	// Bodies ride along on any method, GET included.
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	}))
	defer srv.Close()

	ep := Endpoint{Path: "/q", Method: "GET", Weight: 1}
	execute(testClient(), srv.URL, &ep, "payload")

	if gotBody != "payload" {
		t.Errorf("GET body = %q, want payload", gotBody)
	}
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GET", http.MethodGet},
		{"get", http.MethodGet},
		{"POST", http.MethodPost},
		{"put", http.MethodPut},
		{"DELETE", http.MethodDelete},
		{"PATCH", http.MethodGet}, // unrecognized falls back to GET
		{"", http.MethodGet},
		{"BOGUS", http.MethodGet},
	}

	for _, tt := range tests {
		if got := normalizeMethod(tt.in); got != tt.want {
			t.Errorf("normalizeMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
