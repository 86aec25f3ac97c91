package handler

import "github.com/actuallystonmai/travel-recommendation-service/internal/domain"

// RecommendRequest mirrors domain.UserPreference with pointer fields so a
// missing field can be told apart from a zero value.
type RecommendRequest struct {
	Budget                 *string  `json:"budget" validate:"required"`
	Vibe                   []string `json:"vibe" validate:"required"`
	MinAccommodationRating *int     `json:"min_accommodation_rating" validate:"required"`
	MinSafetyRating        *int     `json:"min_safety_rating" validate:"required"`
	PreferredCrowd         *string  `json:"preferred_crowd" validate:"required"`
	Liked                  []string `json:"liked" validate:"required"`
	Disliked               []string `json:"disliked" validate:"required"`
}

// Preference must only be called on a validated request.
func (r *RecommendRequest) Preference() domain.UserPreference {
	return domain.UserPreference{
		Budget:                 *r.Budget,
		Vibe:                   r.Vibe,
		MinAccommodationRating: *r.MinAccommodationRating,
		MinSafetyRating:        *r.MinSafetyRating,
		PreferredCrowd:         *r.PreferredCrowd,
		Liked:                  r.Liked,
		Disliked:               r.Disliked,
	}
}

type BatchRecommendRequest struct {
	Preferences []RecommendRequest `json:"preferences" validate:"required,min=1,max=50,dive"`
}
