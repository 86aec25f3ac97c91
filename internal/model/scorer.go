package model

import (
	"sort"

	"github.com/actuallystonmai/travel-recommendation-service/internal/domain"
)

const (
	budgetWeight   = 1
	vibeWeight     = 2
	likedWeight    = 1
	dislikedWeight = 2
	crowdWeight    = 1
)

type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

type ScoreInput struct {
	Preference domain.UserPreference
	Places     []domain.Place
	// Limit <= 0 keeps every candidate.
	Limit int
}

// Score ranks the places against the preference. Places failing a minimum
// rating or scoring <= 0 are omitted; equal scores keep catalog order.
func (s *Scorer) Score(input ScoreInput) []domain.Recommendation {
	pref := prepare(input.Preference)

	scored := make([]domain.Recommendation, 0, len(input.Places))
	for _, place := range input.Places {
		score, qualified := pref.score(place)
		if !qualified || score <= 0 {
			continue
		}
		scored = append(scored, domain.Recommendation{
			Place: place.Name,
			Score: score,
		})
	}

	// Sort by score descending
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	// Take top N
	if input.Limit > 0 && len(scored) > input.Limit {
		scored = scored[:input.Limit]
	}

	return scored
}

// ScorePlace returns the score of a single place and whether it passed the
// minimum rating filters. A disqualified place still reports the score it
// accumulated before the filters.
func ScorePlace(pref domain.UserPreference, place domain.Place) (int, bool) {
	return prepare(pref).score(place)
}

type preparedPreference struct {
	domain.UserPreference
	vibe     tagSet
	liked    tagSet
	disliked tagSet
}

func prepare(pref domain.UserPreference) preparedPreference {
	return preparedPreference{
		UserPreference: pref,
		vibe:           newTagSet(pref.Vibe),
		liked:          newTagSet(pref.Liked),
		disliked:       newTagSet(pref.Disliked),
	}
}

func (p preparedPreference) score(place domain.Place) (int, bool) {
	score := 0

	if place.Budget == p.Budget {
		score += budgetWeight
	}

	tags := newTagSet(place.Tags)
	score += vibeWeight * p.vibe.overlap(newTagSet(place.Vibe))
	score += likedWeight * p.liked.overlap(tags)
	score -= dislikedWeight * p.disliked.overlap(tags)

	// Rating filters disqualify regardless of score
	if place.AccommodationRating < p.MinAccommodationRating {
		return score, false
	}
	if place.SafetyRating < p.MinSafetyRating {
		return score, false
	}

	if place.CrowdLevel == p.PreferredCrowd {
		score += crowdWeight
	}

	return score, true
}
