package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/actuallystonmai/travel-recommendation-service/internal/domain"
	"github.com/actuallystonmai/travel-recommendation-service/internal/validation"
	"github.com/goccy/go-json"
)

// File reads a JSON array of places from disk on every call.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Places(ctx context.Context) ([]domain.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCatalogUnavailable, f.path, err)
	}

	return Decode(data)
}

// Decode parses and validates a JSON catalog.
func Decode(data []byte) ([]domain.Place, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, unavailable("catalog is not a JSON array")
	}

	var places []domain.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, fmt.Errorf("%w: decode places: %w", domain.ErrCatalogUnavailable, err)
	}

	seen := make(map[string]struct{}, len(places))
	for i := range places {
		if err := validation.Struct(&places[i]); err != nil {
			return nil, unavailable("place %d: %v", i, err)
		}
		if _, dup := seen[places[i].Name]; dup {
			return nil, unavailable("duplicate place name %q", places[i].Name)
		}
		seen[places[i].Name] = struct{}{}
	}

	return places, nil
}
