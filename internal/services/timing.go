package services

import (
	"time"

	"github.com/wpsadi/AssessKit-sub000/internal/models"
)

// TimingService resolves effective time limits and lateness. All arithmetic
// is done in seconds; round and event limits are declared in minutes and
// converted here, never at call sites.
type TimingService struct{}

func NewTimingService() *TimingService {
	return &TimingService{}
}

// EffectiveLimitSeconds resolves the question → round → event override chain.
// A question-level limit wins; a round flagged uses_event_duration takes the
// event's total duration; otherwise the round's own limit applies. nil means
// the question is untimed and can never be late.
func (s *TimingService) EffectiveLimitSeconds(question *models.Question, round *models.Round, event *models.Event) *int {
	if question != nil && question.TimeLimitSeconds != nil {
		v := *question.TimeLimitSeconds
		return &v
	}
	if round != nil && round.UsesEventDuration && event != nil {
		v := event.DurationMinutes * 60
		return &v
	}
	if round != nil && round.TimeLimitMinutes != nil {
		v := *round.TimeLimitMinutes * 60
		return &v
	}
	return nil
}

func (s *TimingService) ElapsedSeconds(startedAt, now time.Time) int {
	return int(now.Sub(startedAt) / time.Second)
}

// RemainingSeconds is nil for untimed questions and clamped at zero otherwise.
func (s *TimingService) RemainingSeconds(startedAt, now time.Time, limitSeconds *int) *int {
	if limitSeconds == nil {
		return nil
	}
	remaining := *limitSeconds - s.ElapsedSeconds(startedAt, now)
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// IsLate uses elapsed >= limit uniformly; a submission landing exactly on the
// limit is late.
func (s *TimingService) IsLate(startedAt, now time.Time, limitSeconds *int) bool {
	if limitSeconds == nil {
		return false
	}
	return s.ElapsedSeconds(startedAt, now) >= *limitSeconds
}
