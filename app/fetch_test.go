package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"daytrack/model"
)

func fetchFrom(t *testing.T, handler http.HandlerFunc) ([]model.Resource, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return FetchResources(context.Background(), srv.Client(), srv.URL)
}

func TestFetchResourcesOK(t *testing.T) {
	items, err := fetchFrom(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "title": "First", "description": "alpha", "category": "Docs", "link": "https://example.com/1"},
			{"id": 2, "title": "Second", "description": "beta", "category": "Video", "link": "https://example.com/2"}
		]`))
	})
	if err != nil {
		t.Fatalf("FetchResources: %v", err)
	}
	if len(items) != 2 || items[0].ID != 1 || items[1].Title != "Second" || items[0].Category != "Docs" {
		t.Fatalf("items = %+v", items)
	}
}

func TestFetchResourcesHTTPError(t *testing.T) {
	_, err := fetchFrom(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	if err == nil || !strings.Contains(err.Error(), "HTTP 500") {
		t.Fatalf("err = %v, want HTTP 500", err)
	}
}

func TestFetchResourcesMalformedBody(t *testing.T) {
	_, err := fetchFrom(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"truncated": `))
	})
	if err == nil {
		t.Fatal("malformed JSON accepted")
	}
}

func TestFetchResourcesNonArrayBody(t *testing.T) {
	items, err := fetchFrom(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "not an array"}`))
	})
	if err != nil {
		t.Fatalf("non-array body rejected: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("items = %#v, want empty non-nil slice", items)
	}
}

func TestFetchResourcesEmptyArray(t *testing.T) {
	items, err := fetchFrom(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	if err != nil {
		t.Fatalf("FetchResources: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("items = %#v, want empty non-nil slice", items)
	}
}

func TestFetchResourcesContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := FetchResources(ctx, srv.Client(), srv.URL); err == nil {
		t.Fatal("cancelled context did not fail the fetch")
	}
}
