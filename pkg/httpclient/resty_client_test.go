package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientSendsOwnedHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "site-scraper/test" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.Header.Get("Accept-Language"); got != "en" {
			t.Errorf("Accept-Language = %q", got)
		}
		if got := r.Header.Get("X-Request"); got != "1" {
			t.Errorf("X-Request = %q", got)
		}
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	client := NewRestyClient(Options{
		Timeout:   2 * time.Second,
		UserAgent: "site-scraper/test",
		Headers:   map[string]string{"Accept-Language": "en", " ": "skipped"},
	})

	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"X-Request": "1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if string(resp.Body()) != "<html></html>" {
		t.Fatalf("body = %q", resp.Body())
	}
	if ct := resp.Header("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestRestyClientReturnsNon2xxWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	resp, err := NewRestyClient(Options{Timeout: time.Second}).Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusGone {
		t.Fatalf("status = %d, want 410", resp.StatusCode())
	}
}

func TestRestyClientHonoursContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := NewRestyClient(Options{}).Get(ctx, srv.URL, nil); err == nil {
		t.Fatal("expected deadline error")
	}
}
