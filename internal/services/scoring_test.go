package services

import "testing"

func TestLateAnswersAlwaysScoreZero(t *testing.T) {
	scoring := NewScoringService()

	if got := scoring.PointsFor(true, true, 10, -2); got != 0 {
		t.Errorf("late correct answer: expected 0, got %d", got)
	}
	if got := scoring.PointsFor(false, true, 10, -2); got != 0 {
		t.Errorf("late incorrect answer: expected 0, got %d", got)
	}
}

func TestOnTimeCorrectEarnsPositivePoints(t *testing.T) {
	scoring := NewScoringService()

	if got := scoring.PointsFor(true, false, 10, -2); got != 10 {
		t.Errorf("expected +10, got %d", got)
	}
}

func TestOnTimeIncorrectAppliesPenalty(t *testing.T) {
	scoring := NewScoringService()

	if got := scoring.PointsFor(false, false, 10, -2); got != -2 {
		t.Errorf("expected -2, got %d", got)
	}
	if got := scoring.PointsFor(false, false, 10, 0); got != 0 {
		t.Errorf("zero penalty config: expected 0, got %d", got)
	}
}
