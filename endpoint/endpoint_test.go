package endpoint

import (
	"testing"

	"github.com/pkg/errors"
)

func TestResolveURL(t *testing.T) {
	testCases := []struct {
		title    string
		base     string
		path     string
		items    []QueryItem
		expected string
	}{
		{
			title:    "No query items",
			base:     "https://api.example.com",
			path:     "/v1/models",
			items:    nil,
			expected: "https://api.example.com/v1/models",
		},
		{
			title:    "Single query item",
			base:     "https://api.example.com",
			path:     "/v1/models",
			items:    []QueryItem{Query("limit", "5")},
			expected: "https://api.example.com/v1/models?limit=5",
		},
		{
			title: "Order is preserved",
			base:  "https://api.example.com",
			path:  "/v1/files",
			items: []QueryItem{
				Query("purpose", "fine-tune"),
				Query("after", "file-1"),
				Query("limit", "10"),
			},
			expected: "https://api.example.com/v1/files?purpose=fine-tune&after=file-1&limit=10",
		},
		{
			title:    "Items without value are omitted",
			base:     "https://api.example.com",
			path:     "/v1/files",
			items:    []QueryItem{Flag("verbose"), Query("order", "asc")},
			expected: "https://api.example.com/v1/files?order=asc",
		},
		{
			title:    "Empty item list keeps an empty query",
			base:     "https://api.example.com",
			path:     "/v1/models",
			items:    []QueryItem{},
			expected: "https://api.example.com/v1/models?",
		},
		{
			title:    "Values are escaped",
			base:     "https://api.example.com",
			path:     "/v1/models",
			items:    []QueryItem{Query("q", "hello world&more")},
			expected: "https://api.example.com/v1/models?q=hello+world%26more",
		},
		{
			title:    "Path of the origin is replaced",
			base:     "https://api.example.com/ignored/prefix?x=1",
			path:     "/v1/models",
			items:    nil,
			expected: "https://api.example.com/v1/models",
		},
		{
			title:    "Port is kept",
			base:     "http://localhost:8080",
			path:     "/v1/embeddings",
			items:    nil,
			expected: "http://localhost:8080/v1/embeddings",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			u, err := ResolveURL(New(tt.base, tt.path), tt.items)
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if u.String() != tt.expected {
				t.Errorf("unexpected URL: expected=%s, actual=%s", tt.expected, u)
			}
			if u.Path != tt.path {
				t.Errorf("unexpected path: expected=%s, actual=%s", tt.path, u.Path)
			}
		})
	}
}

func TestResolveURL_InvalidBaseURL(t *testing.T) {
	testCases := []struct {
		title string
		base  string
	}{
		{title: "Unparsable", base: "://api.example.com"},
		{title: "Control character", base: "https://api.example.com\x7f"},
		{title: "Missing scheme", base: "api.example.com"},
		{title: "Missing host", base: "https://"},
		{title: "Empty", base: ""},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			u, err := ResolveURL(New(tt.base, "/v1/models"), nil)
			if err == nil {
				t.Fatalf("expected error, got URL %s", u)
			}
			if !errors.Is(err, ErrInvalidBaseURL) {
				t.Errorf("unexpected error kind: err=%+v", err)
			}
			var baseErr *InvalidBaseURLError
			if !errors.As(err, &baseErr) {
				t.Fatalf("error is not an InvalidBaseURLError: err=%+v", err)
			}
			if baseErr.Base != tt.base {
				t.Errorf("unexpected base: expected=%q, actual=%q", tt.base, baseErr.Base)
			}
		})
	}
}

func TestDescriptorString(t *testing.T) {
	d := New("https://api.example.com/", "/v1/models")
	if d.String() != "https://api.example.com/v1/models" {
		t.Errorf("unexpected string: %s", d)
	}
}
