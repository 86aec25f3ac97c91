package seeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/actuallystonmai/travel-recommendation-service/internal/domain"
	"github.com/actuallystonmai/travel-recommendation-service/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Setup replaces the places table contents with the given catalog.
func Setup(ctx context.Context, pool *pgxpool.Pool, places []domain.Place) error {
	logging.Info().Msg("[seed] truncating existing places")
	if _, err := pool.Exec(ctx, `TRUNCATE places RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	logging.Info().Int("count", len(places)).Msg("[seed] inserting places")
	if err := seedPlaces(ctx, pool, places); err != nil {
		return fmt.Errorf("seed places: %w", err)
	}

	logging.Info().Msg("[seed] seeding complete")
	return nil
}

func seedPlaces(ctx context.Context, pool *pgxpool.Pool, places []domain.Place) error {
	query, args := insertPlacesQuery(places)
	if query == "" {
		return nil
	}

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func insertPlacesQuery(places []domain.Place) (string, []any) {
	rows := []string{}
	args := []any{}

	for _, p := range places {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, p.Name, p.Budget, nonNil(p.Vibe), p.AccommodationRating, p.SafetyRating, p.CrowdLevel, nonNil(p.Tags))
	}

	if len(rows) == 0 {
		return "", nil
	}

	query := "INSERT INTO places (name, budget, vibe, accommodation_rating, safety_rating, crowd_level, tags) VALUES " +
		strings.Join(rows, ", ")
	return query, args
}

// TEXT[] columns are NOT NULL; a nil slice would be sent as NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
