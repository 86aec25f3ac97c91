package domain

type Place struct {
	Name                string   `json:"name" validate:"required"`
	Budget              string   `json:"budget" validate:"required"`
	Vibe                []string `json:"vibe"`
	AccommodationRating int      `json:"accommodation_rating" validate:"min=1,max=5"`
	SafetyRating        int      `json:"safety_rating" validate:"min=1,max=5"`
	CrowdLevel          string   `json:"crowd_level" validate:"required"`
	Tags                []string `json:"tags"`
}
