package domain

// UserPreference is the caller-supplied criteria for a single recommendation request.
type UserPreference struct {
	Budget                 string   `json:"budget"`
	Vibe                   []string `json:"vibe"`
	MinAccommodationRating int      `json:"min_accommodation_rating"`
	MinSafetyRating        int      `json:"min_safety_rating"`
	PreferredCrowd         string   `json:"preferred_crowd"`
	Liked                  []string `json:"liked"`
	Disliked               []string `json:"disliked"`
}
