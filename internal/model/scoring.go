package model

import "time"

// ScoringCriteria describes how a contribution category is rewarded.
type ScoringCriteria struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	BasePoints  int     `json:"base_points"`
	Weight      float64 `json:"weight"`
}

// FactorOption is one choice of a select-type scoring factor.
type FactorOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ScoringFactor describes one input of the score calculator. Type is one
// of "select", "number" or "checkbox".
type ScoringFactor struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Options     []FactorOption `json:"options,omitempty"`
	Min         int            `json:"min,omitempty"`
	Max         int            `json:"max,omitempty"`
}

// ScoreEntry is a persisted score calculation outcome.
type ScoreEntry struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	ActivityID string            `json:"activityId"`
	Score      int               `json:"score"`
	Factors    map[string]string `json:"factors"`
	Notes      string            `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// BreakdownRow is one weighted component of a calculated score.
type BreakdownRow struct {
	Category      string  `json:"category"`
	RawScore      int     `json:"raw_score"`
	Weight        float64 `json:"weight"`
	WeightedScore float64 `json:"weighted_score"`
}

// CalculateResult is the response payload of a score calculation.
type CalculateResult struct {
	Score     int            `json:"score"`
	Breakdown []BreakdownRow `json:"breakdown"`
}

// GovernanceMetric is a single named measurement on a governance dimension
// ("department" or "global").
type GovernanceMetric struct {
	ID         string    `json:"id"`
	Dimension  string    `json:"dimension"`
	MetricName string    `json:"metric_name"`
	Value      float64   `json:"value"`
	Timestamp  time.Time `json:"timestamp"`
}

// GovernanceMetrics is the aggregated radar-chart payload for a dimension.
type GovernanceMetrics struct {
	Labels          []string  `json:"labels"`
	Values          []float64 `json:"values"`
	GovernanceIndex float64   `json:"governance_index"`
}
