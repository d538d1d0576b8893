package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
)

func TestDecodeHits(t *testing.T) {
	body := `{"hits":{"hits":[{"_id":"b1","_source":{"id":"b1","name":"Devworks","description":"full stack"}}]}}`
	hits, err := decodeHits(strings.NewReader(body))
	if err != nil {
		t.Fatalf("decodeHits: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "b1" || hits[0].Name != "Devworks" {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestSearchAgainstFakeCluster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the v8 client checks the product header on every response
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if !strings.HasSuffix(r.URL.Path, "/bootcamps/_search") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"b2","_source":{"name":"ModernTech","description":"x"}}]}}`))
	}))
	defer srv.Close()

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	hits, err := NewBootcampIndex(es, "bootcamps").Search(context.Background(), "modern", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "b2" {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestEnsureIndexCreatesMissingIndex(t *testing.T) {
	var created bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			created = r.URL.Path == "/bootcamps"
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	if err := NewBootcampIndex(es, "bootcamps").EnsureIndex(context.Background()); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}
	if !created {
		t.Fatal("index was not created")
	}
}
