package search

import (
	"encoding/json"
	"io"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
)

func decodeHits(r io.Reader) ([]entity.BootcampSummary, error) {
	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string      `json:"_id"`
				Source bootcampDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.BootcampSummary, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, entity.BootcampSummary{ID: h.ID, Name: h.Source.Name, Description: h.Source.Description})
	}
	return out, nil
}
