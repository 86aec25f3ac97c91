package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/actuallystonmai/travel-recommendation-service/internal/domain"
)

// POST /recommend
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.parseLimit(w, r)
	if !ok {
		return
	}

	var req RecommendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.Recommend(r.Context(), req.Preference(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if result.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, RecommendResponse{RecommendedPlaces: result.Recommendations})
}

// POST /recommend/batch
func (h *Handler) RecommendBatch(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.parseLimit(w, r)
	if !ok {
		return
	}

	var req BatchRecommendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	prefs := make([]domain.UserPreference, len(req.Preferences))
	for i := range req.Preferences {
		prefs[i] = req.Preferences[i].Preference()
	}

	writeJSON(w, http.StatusOK, h.service.RecommendBatch(r.Context(), prefs, limit))
}

// GET /places
func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.service.Places(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PlacesResponse{Places: places, TotalCount: len(places)})
}

// Parse and validate the optional limit query parameter. 0 means the default.
func (h *Handler) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return 0, true
	}

	maxLimit := h.service.MaxLimit()
	parsed, err := strconv.Atoi(limitStr)
	if err != nil || parsed < 1 || parsed > maxLimit {
		writeError(w, http.StatusBadRequest, "invalid_parameter",
			fmt.Sprintf("limit must be an integer between 1 and %d", maxLimit))
		return 0, false
	}
	return parsed, true
}
