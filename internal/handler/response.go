package handler

import "github.com/actuallystonmai/travel-recommendation-service/internal/domain"

type RecommendResponse struct {
	RecommendedPlaces []domain.Recommendation `json:"recommended_places"`
}

type PlacesResponse struct {
	Places     []domain.Place `json:"places"`
	TotalCount int            `json:"total_count"`
}

type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
