package services

import (
	"testing"
	"time"

	"github.com/wpsadi/AssessKit-sub000/internal/models"
)

func intPtr(v int) *int { return &v }

func TestEffectiveLimitQuestionOverrideWins(t *testing.T) {
	timing := NewTimingService()
	question := &models.Question{TimeLimitSeconds: intPtr(45)}
	round := &models.Round{TimeLimitMinutes: intPtr(10)}
	event := &models.Event{DurationMinutes: 60}

	limit := timing.EffectiveLimitSeconds(question, round, event)
	if limit == nil || *limit != 45 {
		t.Fatalf("expected 45s question limit, got %v", limit)
	}
}

func TestEffectiveLimitRoundUsesEventDuration(t *testing.T) {
	timing := NewTimingService()
	question := &models.Question{}
	round := &models.Round{UsesEventDuration: true, TimeLimitMinutes: intPtr(10)}
	event := &models.Event{DurationMinutes: 60}

	limit := timing.EffectiveLimitSeconds(question, round, event)
	if limit == nil || *limit != 3600 {
		t.Fatalf("expected event duration 3600s, got %v", limit)
	}
}

func TestEffectiveLimitRoundMinutesConverted(t *testing.T) {
	timing := NewTimingService()
	question := &models.Question{}
	round := &models.Round{TimeLimitMinutes: intPtr(10)}
	event := &models.Event{DurationMinutes: 60}

	limit := timing.EffectiveLimitSeconds(question, round, event)
	if limit == nil || *limit != 600 {
		t.Fatalf("expected round limit converted to 600s, got %v", limit)
	}
}

func TestEffectiveLimitUntimed(t *testing.T) {
	timing := NewTimingService()
	limit := timing.EffectiveLimitSeconds(&models.Question{}, &models.Round{}, &models.Event{})
	if limit != nil {
		t.Fatalf("expected nil limit for untimed question, got %d", *limit)
	}
}

func TestIsLateBoundary(t *testing.T) {
	timing := NewTimingService()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	if timing.IsLate(start, start.Add(29*time.Second), intPtr(30)) {
		t.Error("29s of 30s should not be late")
	}
	if !timing.IsLate(start, start.Add(30*time.Second), intPtr(30)) {
		t.Error("exactly on the limit should be late")
	}
	if !timing.IsLate(start, start.Add(31*time.Second), intPtr(30)) {
		t.Error("31s of 30s should be late")
	}
	if timing.IsLate(start, start.Add(1000*time.Hour), nil) {
		t.Error("untimed question can never be late")
	}
}

func TestRemainingSecondsClampedAtZero(t *testing.T) {
	timing := NewTimingService()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	remaining := timing.RemainingSeconds(start, start.Add(10*time.Second), intPtr(30))
	if remaining == nil || *remaining != 20 {
		t.Fatalf("expected 20s remaining, got %v", remaining)
	}

	remaining = timing.RemainingSeconds(start, start.Add(45*time.Second), intPtr(30))
	if remaining == nil || *remaining != 0 {
		t.Fatalf("expected remaining clamped to 0, got %v", remaining)
	}

	if timing.RemainingSeconds(start, start, nil) != nil {
		t.Fatal("expected nil remaining for untimed question")
	}
}
