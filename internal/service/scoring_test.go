package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/repository"
)

func newTestScoringService() (*ScoringService, *repository.MemoryUserRepository, *repository.MemoryScoringRepository) {
	users := repository.NewMemoryUserRepository()
	scoring := repository.NewMemoryScoringRepository(repository.SeedScoringCriteria(), repository.SeedScoringFactors())
	activities := repository.NewMemoryActivityRepository(repository.SeedActivities())
	return NewScoringService(scoring, users, activities), users, scoring
}

func TestCalculateBaseOnly(t *testing.T) {
	svc, _, _ := newTestScoringService()

	result, err := svc.Calculate(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	if result.Score != 50 {
		t.Errorf("Calculate() score = %d, want 50", result.Score)
	}
	if len(result.Breakdown) != 5 {
		t.Fatalf("Calculate() breakdown rows = %d, want 5", len(result.Breakdown))
	}
	if result.Breakdown[0].Category != "基础评分" || result.Breakdown[0].WeightedScore != 50 {
		t.Errorf("Calculate() base row = %+v", result.Breakdown[0])
	}
}

func TestCalculateAllFactors(t *testing.T) {
	svc, _, _ := newTestScoringService()

	// high quality (20*1.2=24), fast completion (15*0.8=12),
	// innovative (25*1.5=37.5), collaboration (15*1.0=15), base 50.
	result, err := svc.Calculate(context.Background(), map[string]any{
		"1": "high",
		"2": float64(20),
		"3": "innovative",
		"4": true,
	})
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	if result.Score != 139 {
		t.Errorf("Calculate() score = %d, want 139", result.Score)
	}
}

func TestCalculateMediumTier(t *testing.T) {
	svc, _, _ := newTestScoringService()

	// medium quality (10*1.2=12), 45 min (5*0.8=4), improved (10*1.5=15), base 50.
	result, err := svc.Calculate(context.Background(), map[string]any{
		"1": "medium",
		"2": "45",
		"3": "improved",
	})
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	if result.Score != 81 {
		t.Errorf("Calculate() score = %d, want 81", result.Score)
	}
}

func TestCalculateCreditsUserPoints(t *testing.T) {
	svc, users, scoring := newTestScoringService()
	ctx := context.Background()

	user := &model.User{Email: "u@x.com", Points: 10}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	userID := strconv.FormatInt(user.ID, 10)

	result, err := svc.Calculate(ctx, map[string]any{
		"user_id":     userID,
		"activity_id": "a1",
		"notes":       "出色完成",
		"4":           true,
	})
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}

	got, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if got.Points != 10+result.Score {
		t.Errorf("points = %d, want %d", got.Points, 10+result.Score)
	}

	entries, err := scoring.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].UserID != userID || entries[0].Score != result.Score || entries[0].Notes != "出色完成" {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestCalculateIgnoresUnknownActivity(t *testing.T) {
	svc, users, scoring := newTestScoringService()
	ctx := context.Background()

	user := &model.User{Email: "u@x.com"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	_, err := svc.Calculate(ctx, map[string]any{
		"user_id":     strconv.FormatInt(user.ID, 10),
		"activity_id": "missing",
	})
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}

	got, _ := users.GetByID(ctx, user.ID)
	if got.Points != 0 {
		t.Errorf("points = %d, want 0 for unresolved activity", got.Points)
	}
	entries, _ := scoring.ListEntries(ctx)
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestGovernanceMetricsSampleFallback(t *testing.T) {
	svc, _, _ := newTestScoringService()

	dept, err := svc.GovernanceMetrics(context.Background(), "")
	if err != nil {
		t.Fatalf("GovernanceMetrics() unexpected error: %v", err)
	}
	if dept.GovernanceIndex != 89.5 || len(dept.Labels) != 6 {
		t.Errorf("GovernanceMetrics(department) = %+v", dept)
	}

	global, err := svc.GovernanceMetrics(context.Background(), "global")
	if err != nil {
		t.Fatalf("GovernanceMetrics() unexpected error: %v", err)
	}
	if global.GovernanceIndex != 86.3 {
		t.Errorf("GovernanceMetrics(global) index = %v, want 86.3", global.GovernanceIndex)
	}
}

func TestGovernanceMetricsStoredValues(t *testing.T) {
	svc, _, _ := newTestScoringService()
	ctx := context.Background()

	if err := svc.SaveGovernanceMetric(ctx, "department", "代码质量", 90); err != nil {
		t.Fatalf("SaveGovernanceMetric() unexpected error: %v", err)
	}
	if err := svc.SaveGovernanceMetric(ctx, "department", "安全合规", 80); err != nil {
		t.Fatalf("SaveGovernanceMetric() unexpected error: %v", err)
	}

	metrics, err := svc.GovernanceMetrics(ctx, "department")
	if err != nil {
		t.Fatalf("GovernanceMetrics() unexpected error: %v", err)
	}
	if len(metrics.Labels) != 2 || metrics.GovernanceIndex != 85 {
		t.Errorf("GovernanceMetrics() = %+v, want 2 labels and index 85", metrics)
	}

	// Saving an existing metric updates in place rather than appending.
	if err := svc.SaveGovernanceMetric(ctx, "department", "代码质量", 70); err != nil {
		t.Fatalf("SaveGovernanceMetric() unexpected error: %v", err)
	}
	metrics, _ = svc.GovernanceMetrics(ctx, "department")
	if len(metrics.Labels) != 2 || metrics.GovernanceIndex != 75 {
		t.Errorf("GovernanceMetrics() after update = %+v, want index 75", metrics)
	}
}

func TestSaveGovernanceMetricMissingFields(t *testing.T) {
	svc, _, _ := newTestScoringService()

	if err := svc.SaveGovernanceMetric(context.Background(), "", "代码质量", 1); err != ErrMissingFields {
		t.Errorf("SaveGovernanceMetric() error = %v, want ErrMissingFields", err)
	}
}
