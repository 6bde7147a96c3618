package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"placebook/internal/apperr"
)

func TestGeocodeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1.7/geocode" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "1600 Amphitheatre Pkwy" {
			t.Errorf("unexpected address %q", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("unexpected api key %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"location":{"lat":37.4224764,"lng":-122.0842499}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	coords, err := client.Geocode(context.Background(), "1600 Amphitheatre Pkwy")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if coords.Lat != 37.4224764 || coords.Lng != -122.0842499 {
		t.Fatalf("unexpected coordinates %+v", coords)
	}
}

func TestGeocodeZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	_, err := client.Geocode(context.Background(), "nowhere at all")
	if !apperr.Is(err, apperr.Lookup) {
		t.Fatalf("expected Lookup error for zero results, got %v", err)
	}
}

func TestGeocodeServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	_, err := client.Geocode(context.Background(), "20 W 34th St")
	if err == nil {
		t.Fatal("expected error for failing service")
	}
	if apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("transport failures must stay opaque, got kind %d", apperr.KindOf(err))
	}
}
