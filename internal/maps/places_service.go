package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// minRating filters out poorly reviewed attractions.
const minRating = 4.0

// Place represents a simplified location result.
type Place struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	PlaceID          string  `json:"placeId"`
	UserRatingsTotal int     `json:"userRatingsTotal"`
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// SearchAttractions returns up to limit well-rated tourist attractions in destination,
// in the order the API ranks them.
func (s *PlacesService) SearchAttractions(ctx context.Context, destination string, limit int) ([]Place, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("empty destination")
	}

	r := &maps.TextSearchRequest{
		Query:    "top tourist attractions in " + destination,
		Type:     "tourist_attraction",
		Language: "en",
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	return filterPlaces(resp.Results, limit), nil
}

func filterPlaces(results []maps.PlacesSearchResult, limit int) []Place {
	if limit <= 0 {
		limit = len(results)
	}
	places := make([]Place, 0, limit)
	seen := make(map[string]struct{}, len(results))
	for _, result := range results {
		if result.Rating < minRating {
			continue
		}
		if _, dup := seen[result.PlaceID]; dup {
			continue
		}
		seen[result.PlaceID] = struct{}{}

		places = append(places, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(places) >= limit {
			break
		}
	}
	return places
}
