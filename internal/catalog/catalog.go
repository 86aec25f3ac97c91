// Package catalog provides the sources the recommendation service reads places from.
package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/actuallystonmai/travel-recommendation-service/internal/domain"
)

// Static serves a fixed in-memory catalog.
type Static struct {
	places []domain.Place
}

func NewStatic(places []domain.Place) *Static {
	return &Static{places: slices.Clone(places)}
}

// Places returns a copy so callers cannot mutate the catalog.
func (s *Static) Places(_ context.Context) ([]domain.Place, error) {
	return slices.Clone(s.places), nil
}

// Default returns the built-in destinations.
func Default() []domain.Place {
	return []domain.Place{
		{
			Name:                "Eiffel Tower",
			Budget:              "medium",
			Vibe:                []string{"romantic", "historic"},
			AccommodationRating: 4,
			SafetyRating:        5,
			CrowdLevel:          "high",
			Tags:                []string{"city", "historic", "romantic"},
		},
		{
			Name:                "Colosseum",
			Budget:              "medium",
			Vibe:                []string{"historic"},
			AccommodationRating: 4,
			SafetyRating:        4,
			CrowdLevel:          "high",
			Tags:                []string{"historic", "ancient", "city"},
		},
		{
			Name:                "Maldives Beach",
			Budget:              "high",
			Vibe:                []string{"relaxing", "romantic"},
			AccommodationRating: 5,
			SafetyRating:        5,
			CrowdLevel:          "low",
			Tags:                []string{"beach", "island", "luxury"},
		},
		{
			Name:                "Bondi Beach",
			Budget:              "low",
			Vibe:                []string{"adventure", "fun"},
			AccommodationRating: 3,
			SafetyRating:        4,
			CrowdLevel:          "high",
			Tags:                []string{"beach", "surfing", "sun"},
		},
	}
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrCatalogUnavailable, fmt.Sprintf(format, args...))
}
