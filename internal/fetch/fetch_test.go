package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestExtensionFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://example.com/audio/track.mp3", ".mp3"},
		{"https://example.com/track.FLAC", ".flac"},
		{"https://example.com/book.m4b?session=abc123", ".m4b"},
		{"https://example.com/stream", ""},
		{"https://example.com/", ""},
		{"://not a url", ""},
	}

	for _, tt := range tests {
		if got := ExtensionFromURL(tt.url); got != tt.expected {
			t.Errorf("ExtensionFromURL(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
	}
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD request, got %s", r.Method)
		}
		w.Header().Set("Content-Length", "5000")
	}))
	defer srv.Close()

	c := New()
	size, err := c.Probe(context.Background(), srv.URL+"/track.mp3")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if size != 5000 {
		t.Errorf("size = %d, expected 5000", size)
	}
}

func TestProbe_UnknownLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Force a chunked response so no Content-Length is sent
		w.Header().Set("Transfer-Encoding", "chunked")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New()
	size, err := c.Probe(context.Background(), srv.URL+"/stream")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if size != 0 {
		t.Errorf("size = %d, expected 0 for unknown length", size)
	}
}

func TestProbe_ConnectionRefused(t *testing.T) {
	c := New()
	_, err := c.Probe(context.Background(), "http://127.0.0.1:1/track.mp3")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}

	fetchErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if fetchErr.Op != "probe" {
		t.Errorf("Op = %q, expected %q", fetchErr.Op, "probe")
	}
}

func TestDownload(t *testing.T) {
	content := []byte("fake mp3 payload bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer srv.Close()

	c := New(WithTempDir(t.TempDir()))
	path, err := c.Download(context.Background(), srv.URL+"/song.mp3")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer os.Remove(path)

	if !strings.HasSuffix(path, ".mp3") {
		t.Errorf("downloaded file %q should carry the URL extension", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read downloaded file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("downloaded content = %q, expected %q", got, content)
	}
}

func TestDownload_NoExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer srv.Close()

	c := New(WithTempDir(t.TempDir()))
	path, err := c.Download(context.Background(), srv.URL+"/stream")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer os.Remove(path)

	base := path[strings.LastIndex(path, "/")+1:]
	if strings.Contains(base, ".") {
		t.Errorf("file name %q should have no extension", base)
	}
}

func TestDownload_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(WithTempDir(t.TempDir()))
	_, err := c.Download(context.Background(), srv.URL+"/missing.mp3")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should mention the status: %v", err)
	}
}
