package httpclient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func captureHeaders(t *testing.T, clientType ClientType) http.Header {
	t.Helper()

	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer server.Close()

	client := NewClient(clientType)
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()

	return got
}

func TestPodcastClientHeaders(t *testing.T) {
	headers := captureHeaders(t, PodcastClient)

	if ua := headers.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
		t.Errorf("Expected browser-like User-Agent, got %q", ua)
	}
	if accept := headers.Get("Accept"); !strings.Contains(accept, "audio/mpeg") {
		t.Errorf("Expected audio Accept header, got %q", accept)
	}
	if enc := headers.Get("Accept-Encoding"); enc != "identity" {
		t.Errorf("Expected identity encoding, got %q", enc)
	}
}

func TestBrowserClientHeaders(t *testing.T) {
	headers := captureHeaders(t, BrowserClient)

	if ua := headers.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
		t.Errorf("Expected browser-like User-Agent, got %q", ua)
	}
	if accept := headers.Get("Accept"); !strings.Contains(accept, "text/html") {
		t.Errorf("Expected HTML Accept header, got %q", accept)
	}
}

func TestPlainClientHeaders(t *testing.T) {
	headers := captureHeaders(t, PlainClient)

	if ua := headers.Get("User-Agent"); !strings.HasPrefix(ua, "curl/") {
		t.Errorf("Expected curl User-Agent, got %q", ua)
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClient(PodcastClient)
	client.SetTimeout(5 * time.Minute)

	if client.client.Timeout != 5*time.Minute {
		t.Errorf("Expected 5m timeout, got %s", client.client.Timeout)
	}
}

func TestHead(t *testing.T) {
	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))
	defer server.Close()

	client := NewClient(BrowserClient)
	resp, err := client.Head(server.URL)
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	resp.Body.Close()

	if method != http.MethodHead {
		t.Errorf("Expected HEAD request, got %s", method)
	}
}
