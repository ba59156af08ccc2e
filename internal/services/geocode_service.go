package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/joshua-takyi/rendez/internal/models"
	jsoniter "github.com/json-iterator/go"
)

const GoogleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GeocodeService resolves free-text addresses through the Google Geocoding API.
// One request per call: no timeout beyond the caller's context, no retry, no cache.
type GeocodeService struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewGeocodeService(apiKey string, client *http.Client) *GeocodeService {
	if client == nil {
		client = &http.Client{}
	}
	return &GeocodeService{
		client:  client,
		baseURL: GoogleGeocodeURL,
		apiKey:  apiKey,
	}
}

// WithBaseURL points the service at another endpoint, e.g. a test server.
func (gs *GeocodeService) WithBaseURL(baseURL string) *GeocodeService {
	gs.baseURL = baseURL
	return gs
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (gs *GeocodeService) Resolve(ctx context.Context, address string) (*models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, models.NotAllowed("address cannot be empty")
	}

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", gs.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gs.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}

	resp, err := gs.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call geocoding api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding api returned status: %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	switch body.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("geocoding api error %s: %s", body.Status, body.ErrorMessage)
	}

	if len(body.Results) == 0 {
		return nil, models.NotFound("address not found")
	}

	loc := body.Results[0].Geometry.Location
	return &models.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
