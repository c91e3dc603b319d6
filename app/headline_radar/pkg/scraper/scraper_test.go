package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"h1 wins", `<html><head><title>Bar</title></head><body><h1>Foo</h1></body></html>`, "Foo"},
		{"h1 trimmed", "<html><body><h1>\n   Foo  \n</h1></body></html>", "Foo"},
		{"first h1", `<body><h1>First</h1><h1>Second</h1></body>`, "First"},
		{"title only", `<html><head><title>Bar</title></head><body><p>x</p></body></html>`, "Bar"},
		{"blank h1 is kept", `<html><head><title> Bar </title></head><body><h1>  </h1></body></html>`, ""},
		{"neither", `<html><body><p>nothing</p></body></html>`, NoTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.html), nil)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.Title != tt.want {
				t.Errorf("Title = %q, want %q", got.Title, tt.want)
			}
		})
	}
}

func TestParseTopicHint(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"description", `<html><head><meta name="description" content="Baz"></head></html>`, "Baz"},
		{"case insensitive name", `<html><head><meta name="Description" content="Baz"></head></html>`, "Baz"},
		{"other meta ignored", `<html><head><meta name="keywords" content="a,b"></head></html>`, GeneralContent},
		{"absent", `<html><head><title>x</title></head></html>`, GeneralContent},
		{"empty content", `<html><head><meta name="description" content=""></head></html>`, GeneralContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.html), nil)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.TopicHint != tt.want {
				t.Errorf("TopicHint = %q, want %q", got.TopicHint, tt.want)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Bar</title><meta name="description" content="Tech news"></head>
<body><h1>iPhone 17 Pro vs S26 Ultra</h1><p>Body text.</p></body></html>`))
	}))
	defer srv.Close()

	c := NewClient(0, "")
	got, err := c.Fetch(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got.Title != "iPhone 17 Pro vs S26 Ultra" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.TopicHint != "Tech news" {
		t.Errorf("TopicHint = %q", got.TopicHint)
	}
	if got.URL != srv.URL+"/article" {
		t.Errorf("URL = %q", got.URL)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want browser UA", gotUA)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("<h1>late</h1>"))
		}
	}))
	defer srv.Close()

	tests := []struct {
		name string
		url  string
		kind ErrorKind
	}{
		{"status", srv.URL + "/missing", KindStatus},
		{"timeout", srv.URL + "/slow", KindNetwork},
		{"bad scheme", "ftp://example.com/x", KindInvalidURL},
		{"no host", "https://", KindInvalidURL},
	}

	c := NewClient(50*time.Millisecond, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Fetch(context.Background(), tt.url)
			var se *Error
			if !errors.As(err, &se) {
				t.Fatalf("Fetch() error = %v, want *scraper.Error", err)
			}
			if se.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", se.Kind, tt.kind)
			}
		})
	}
}

func TestFetchIgnoresContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte(`<html><body><h1>Served as bytes</h1></body></html>`))
	}))
	defer srv.Close()

	art, err := NewClient(time.Second, "").Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if art.Title != "Served as bytes" {
		t.Errorf("Title = %q", art.Title)
	}
}
