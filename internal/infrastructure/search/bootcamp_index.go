package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
)

// BootcampIndex keeps a denormalized copy of bootcamps for full-text search.
type BootcampIndex struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewBootcampIndex(es *elasticsearch.Client, index string) *BootcampIndex {
	return &BootcampIndex{es: es, index: index, timeout: 3 * time.Second}
}

type bootcampDoc struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Careers     []string  `json:"careers"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
}

func docOf(b *entity.Bootcamp) bootcampDoc {
	return bootcampDoc{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		Careers:     b.Careers,
		City:        b.Location.City,
		State:       b.Location.State,
		CreatedAt:   b.CreatedAt,
	}
}

const bootcampMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "name":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "slug":        {"type": "keyword"},
      "description": {"type": "text"},
      "careers":     {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "city":        {"type": "text"},
      "state":       {"type": "keyword"},
      "createdAt":   {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping unless it already exists.
func (x *BootcampIndex) EnsureIndex(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	exists, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(ctx, x.es)
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}
	res, err := esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(bootcampMapping)}.Do(ctx, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es create index %s: %s", x.index, res.Status())
	}
	return nil
}

func (x *BootcampIndex) Index(ctx context.Context, b *entity.Bootcamp) error {
	body, err := json.Marshal(docOf(b))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	req := esapi.IndexRequest{Index: x.index, DocumentID: b.ID, Body: bytes.NewReader(body), Refresh: "false"}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", b.ID, res.Status())
	}
	return nil
}

func (x *BootcampIndex) Remove(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over name, description and careers.
func (x *BootcampIndex) Search(ctx context.Context, q string, size int) ([]entity.BootcampSummary, error) {
	body, err := json.Marshal(searchBody(q, size))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}
	return decodeHits(res.Body)
}

func searchBody(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^3", "careers^2", "description", "city"},
			},
		},
		"size": size,
	}
}
