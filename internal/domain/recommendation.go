package domain

type Recommendation struct {
	Place string `json:"place"`
	Score int    `json:"score"`
}

type RecommendationResult struct {
	Recommendations []Recommendation
	CacheHit        bool
}

type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailed  BatchStatus = "failed"
)

type BatchItemResult struct {
	Index             int              `json:"index"`
	RecommendedPlaces []Recommendation `json:"recommended_places,omitempty"`
	Status            BatchStatus      `json:"status"`
	Error             string           `json:"error,omitempty"`
	Message           string           `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Results  []BatchItemResult `json:"results"`
	Summary  BatchSummary      `json:"summary"`
	Metadata BatchMeta         `json:"metadata"`
}
