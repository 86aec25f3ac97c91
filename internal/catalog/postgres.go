package catalog

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/travel-recommendation-service/internal/domain"
)

type PlaceLister interface {
	ListPlaces(ctx context.Context) ([]domain.Place, error)
}

// Postgres loads the catalog from the places table.
type Postgres struct {
	repo PlaceLister
}

func NewPostgres(repo PlaceLister) *Postgres {
	return &Postgres{repo: repo}
}

func (p *Postgres) Places(ctx context.Context) ([]domain.Place, error) {
	places, err := p.repo.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return places, nil
}
