package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/travel-recommendation-service/internal/domain"
)

// List places in insertion order
func (r *Repository) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, budget, vibe, accommodation_rating, safety_rating, crowd_level, tags
		FROM places
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	defer rows.Close()

	places := []domain.Place{}
	for rows.Next() {
		var p domain.Place
		err := rows.Scan(&p.Name, &p.Budget, &p.Vibe, &p.AccommodationRating, &p.SafetyRating, &p.CrowdLevel, &p.Tags)
		if err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over places: %w", err)
	}
	return places, nil
}

// Count catalog rows
func (r *Repository) CountPlaces(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM places`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count places: %w", err)
	}
	return total, nil
}
