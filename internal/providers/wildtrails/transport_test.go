package wildtrails

import (
	"net/http"
	"testing"
	"time"
)

func TestNormalizeBaseURLTrimsTrailingSlashAndDefaults(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", defaultBaseURL},
		{"  ", defaultBaseURL},
		{"https://example.com/query.php/", "https://example.com/query.php"},
		{"https://example.com/query.php", "https://example.com/query.php"},
	}

	for _, c := range cases {
		if got := normalizeBaseURL(c.input); got != c.expected {
			t.Fatalf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestResolveHTTPClientDefaultsTimeout(t *testing.T) {
	client := resolveHTTPClient(nil)
	httpClient, ok := client.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", client)
	}
	if httpClient.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected timeout %s, got %s", defaultHTTPTimeout, httpClient.Timeout)
	}
}

func TestResolveHTTPClientUsesProvidedClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	client := resolveHTTPClient(custom)
	if client != custom {
		t.Fatalf("expected provided client to be used")
	}
}

func TestCommonHeadersDeriveAuthorityFromBaseURL(t *testing.T) {
	h := commonHeaders("https://permits.example.org/query.php", "session=1")
	if got := h.Get("Authority"); got != "permits.example.org" {
		t.Fatalf("expected authority from base url, got %s", got)
	}
	if got := h.Get("Cookie"); got != "session=1" {
		t.Fatalf("expected cookie header, got %s", got)
	}
	if got := commonHeaders("::bad", "").Get("Authority"); got != "yosemite.org" {
		t.Fatalf("expected fallback authority, got %s", got)
	}
}
