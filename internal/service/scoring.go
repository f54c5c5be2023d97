package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/repository"
)

// ScoringService handles score calculation, scoring reference data and
// governance metrics.
type ScoringService struct {
	scoring    repository.ScoringRepository
	users      repository.UserRepository
	activities repository.ActivityRepository
}

// NewScoringService creates a new ScoringService.
func NewScoringService(scoring repository.ScoringRepository, users repository.UserRepository, activities repository.ActivityRepository) *ScoringService {
	return &ScoringService{scoring: scoring, users: users, activities: activities}
}

// Criteria returns the contribution categories.
func (s *ScoringService) Criteria(ctx context.Context) ([]model.ScoringCriteria, error) {
	return s.scoring.Criteria(ctx)
}

// Factors returns the score-calculator input definitions.
func (s *ScoringService) Factors(ctx context.Context) ([]model.ScoringFactor, error) {
	return s.scoring.Factors(ctx)
}

// Entries returns all persisted score entries.
func (s *ScoringService) Entries(ctx context.Context) ([]model.ScoreEntry, error) {
	return s.scoring.ListEntries(ctx)
}

// Calculate computes a weighted score from the raw calculator input. The
// input carries user_id, activity_id and notes alongside factor values
// keyed by factor ID. When both the user and the activity resolve, the
// score is credited to the user and a score entry is persisted.
func (s *ScoringService) Calculate(ctx context.Context, input map[string]any) (model.CalculateResult, error) {
	factors := make(map[string]string)
	for k, v := range input {
		if k == "user_id" || k == "activity_id" || k == "notes" {
			continue
		}
		factors[k] = stringifyFactor(v)
	}

	quality := factors["1"]
	qualityRaw := 0
	switch quality {
	case "high":
		qualityRaw = 20
	case "medium":
		qualityRaw = 10
	}

	timeRaw := 0
	if tv, err := strconv.Atoi(factors["2"]); err == nil && factors["2"] != "" {
		switch {
		case tv < 30:
			timeRaw = 15
		case tv < 60:
			timeRaw = 5
		}
	}

	innovationRaw := 0
	switch factors["3"] {
	case "innovative":
		innovationRaw = 25
	case "improved":
		innovationRaw = 10
	}

	collabRaw := 0
	if truthy(factors["4"]) {
		collabRaw = 15
	}

	breakdown := []model.BreakdownRow{
		{Category: "基础评分", RawScore: 50, Weight: 1.0, WeightedScore: 50},
		{Category: "质量调整", RawScore: qualityRaw, Weight: 1.2, WeightedScore: float64(qualityRaw) * 1.2},
		{Category: "时间效率", RawScore: timeRaw, Weight: 0.8, WeightedScore: float64(timeRaw) * 0.8},
		{Category: "创新加分", RawScore: innovationRaw, Weight: 1.5, WeightedScore: float64(innovationRaw) * 1.5},
		{Category: "团队协作", RawScore: collabRaw, Weight: 1.0, WeightedScore: float64(collabRaw)},
	}

	var sum float64
	for _, row := range breakdown {
		sum += row.WeightedScore
	}
	score := int(math.Round(sum))

	userID, _ := input["user_id"].(string)
	activityID, _ := input["activity_id"].(string)
	notes, _ := input["notes"].(string)

	if userID != "" && activityID != "" {
		if err := s.creditScore(ctx, userID, activityID, score, factors, notes); err != nil {
			return model.CalculateResult{}, err
		}
	}

	return model.CalculateResult{Score: score, Breakdown: breakdown}, nil
}

// creditScore adds the score to the user's points and records the entry.
// Unresolvable user or activity IDs are ignored, matching the calculator's
// fire-and-forget persistence.
func (s *ScoringService) creditScore(ctx context.Context, userID, activityID string, score int, factors map[string]string, notes string) error {
	uid, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil
	}
	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return nil
	}
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return nil
	}

	user.Points += score
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.scoring.CreateEntry(ctx, &model.ScoreEntry{
		ID:         uuid.NewString(),
		UserID:     userID,
		ActivityID: activityID,
		Score:      score,
		Factors:    factors,
		Notes:      notes,
	})
}

// GovernanceMetrics returns the radar-chart payload for a dimension
// ("department" or "global"), falling back to sample data when nothing
// has been recorded yet.
func (s *ScoringService) GovernanceMetrics(ctx context.Context, dimension string) (model.GovernanceMetrics, error) {
	if dimension == "" {
		dimension = "department"
	}

	metrics, err := s.scoring.MetricsByDimension(ctx, dimension)
	if err != nil {
		return model.GovernanceMetrics{}, err
	}
	if len(metrics) == 0 {
		return sampleGovernanceMetrics(dimension), nil
	}

	out := model.GovernanceMetrics{}
	var sum float64
	for _, m := range metrics {
		out.Labels = append(out.Labels, m.MetricName)
		out.Values = append(out.Values, m.Value)
		sum += m.Value
	}
	out.GovernanceIndex = math.Round(sum/float64(len(metrics))*10) / 10
	return out, nil
}

// SaveGovernanceMetric records or updates a single metric value.
func (s *ScoringService) SaveGovernanceMetric(ctx context.Context, dimension, metricName string, value float64) error {
	if dimension == "" || metricName == "" {
		return ErrMissingFields
	}
	return s.scoring.SaveMetric(ctx, &model.GovernanceMetric{
		ID:         uuid.NewString(),
		Dimension:  dimension,
		MetricName: metricName,
		Value:      value,
	})
}

func sampleGovernanceMetrics(dimension string) model.GovernanceMetrics {
	labels := []string{"代码质量", "文档完整性", "安全合规", "性能效率", "可维护性", "可扩展性"}
	if dimension == "global" {
		return model.GovernanceMetrics{
			Labels:          labels,
			Values:          []float64{80, 85, 92, 88, 78, 86},
			GovernanceIndex: 86.3,
		}
	}
	return model.GovernanceMetrics{
		Labels:          labels,
		Values:          []float64{85, 92, 88, 76, 90, 82},
		GovernanceIndex: 89.5,
	}
}

func stringifyFactor(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		// JSON numbers decode as float64; factor values are integral.
		return strconv.Itoa(int(t))
	default:
		return fmt.Sprint(t)
	}
}

func truthy(s string) bool {
	return s != "" && s != "false" && s != "0"
}
