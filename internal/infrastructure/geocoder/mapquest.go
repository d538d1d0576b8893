package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (entity.Location, error)
}

// MapQuest resolves addresses with the MapQuest geocoding API. The first
// result is trusted.
type MapQuest struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewMapQuest(baseURL, apiKey string) *MapQuest {
	return &MapQuest{BaseURL: baseURL, APIKey: apiKey, Client: &http.Client{Timeout: 5 * time.Second}}
}

type mapQuestResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			AdminArea5 string `json:"adminArea5"` // city
			AdminArea3 string `json:"adminArea3"` // state
			AdminArea1 string `json:"adminArea1"` // country
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

func (m *MapQuest) Geocode(ctx context.Context, address string) (entity.Location, error) {
	q := url.Values{}
	q.Set("key", m.APIKey)
	q.Set("location", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return entity.Location{}, err
	}
	res, err := m.Client.Do(req)
	if err != nil {
		return entity.Location{}, apperror.Upstream(err, "Geocoder unavailable")
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return entity.Location{}, apperror.Upstream(fmt.Errorf("geocoder status %d", res.StatusCode), "Geocoder unavailable")
	}

	var parsed mapQuestResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return entity.Location{}, apperror.Upstream(err, "Geocoder returned an invalid response")
	}
	if len(parsed.Results) == 0 || len(parsed.Results[0].Locations) == 0 {
		return entity.Location{}, apperror.Validation("Could not geocode address %q", address)
	}
	l := parsed.Results[0].Locations[0]
	loc := entity.Location{
		Type:        "Point",
		Coordinates: [2]float64{l.LatLng.Lng, l.LatLng.Lat},
		Street:      l.Street,
		City:        l.AdminArea5,
		State:       l.AdminArea3,
		Zipcode:     l.PostalCode,
		Country:     l.AdminArea1,
	}
	loc.FormattedAddress = formatAddress(loc)
	return loc, nil
}

func formatAddress(l entity.Location) string {
	var parts []string
	for _, p := range []string{l.Street, l.City, strings.TrimSpace(l.State + " " + l.Zipcode), l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
