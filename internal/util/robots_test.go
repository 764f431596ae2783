package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRobotsChecker_Disallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /search/\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("casebrief", 2*time.Second)

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/search/")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if allowed {
		t.Error("Expected /search/ to be disallowed")
	}

	allowed, _, err = checker.CanFetch(context.Background(), server.URL+"/doc/123/")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("Expected /doc/123/ to be allowed")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewRobotsChecker("casebrief", 2*time.Second)

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/search/")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("Missing robots.txt should allow fetching")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("casebrief", 2*time.Second)

	for i := 0; i < 3; i++ {
		if _, _, err := checker.CanFetch(context.Background(), server.URL+"/search/"); err != nil {
			t.Fatalf("CanFetch failed: %v", err)
		}
	}
	if fetches != 1 {
		t.Errorf("Expected robots.txt fetched once, got %d", fetches)
	}
}
