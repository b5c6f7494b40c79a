package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/wpsadi/AssessKit-sub000/internal/models"
	"github.com/wpsadi/AssessKit-sub000/pkg/cache"

	"gorm.io/gorm"
)

const leaderboardTTL = 10 * time.Second

// LeaderboardService aggregates persisted scores into ranked standings.
// Results are cached in Redis between polls; reads are eventually consistent
// with concurrent submissions, which is acceptable within the poll interval.
type LeaderboardService struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

func NewLeaderboardService(db *gorm.DB, cache *cache.RedisCache) *LeaderboardService {
	return &LeaderboardService{db: db, cache: cache}
}

type LeaderboardEntry struct {
	Rank                  int        `json:"rank"`
	ParticipantID         uint       `json:"participant_id"`
	DisplayName           string     `json:"display_name"`
	Email                 string     `json:"email"`
	TotalPoints           int        `json:"total_points"`
	CorrectAnswers        int        `json:"correct_answers"`
	TotalQuestions        int        `json:"total_questions"`
	Accuracy              int        `json:"accuracy"`
	CompletionTimeSeconds int        `json:"completion_time"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
}

// EventLeaderboard sums each participant's round scores for the whole event.
// Sort: points desc, total completion time asc, last completion asc.
func (s *LeaderboardService) EventLeaderboard(eventID uint) ([]LeaderboardEntry, error) {
	key := fmt.Sprintf("leaderboard:event:%d", eventID)
	if cached := s.fromCache(key); cached != nil {
		return cached, nil
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	var entries []LeaderboardEntry
	err := s.db.Raw(`
		SELECT p.id AS participant_id, p.display_name, p.email,
		       SUM(s.total_points) AS total_points,
		       SUM(s.correct_answers) AS correct_answers,
		       SUM(s.total_questions) AS total_questions,
		       SUM(s.completion_time_seconds) AS completion_time_seconds,
		       MAX(s.completed_at) AS completed_at
		FROM scores s
		JOIN participants p ON p.id = s.participant_id
		WHERE s.event_id = ?
		GROUP BY p.id, p.display_name, p.email
	`, eventID).Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	rankEntries(entries)
	s.toCache(key, entries)
	return entries, nil
}

// RoundLeaderboard ranks the score rows of a single round.
// Sort: points desc, completion time asc, completed-at asc.
func (s *LeaderboardService) RoundLeaderboard(roundID uint) ([]LeaderboardEntry, error) {
	key := fmt.Sprintf("leaderboard:round:%d", roundID)
	if cached := s.fromCache(key); cached != nil {
		return cached, nil
	}

	var round models.Round
	if err := s.db.First(&round, roundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}

	var entries []LeaderboardEntry
	err := s.db.Raw(`
		SELECT p.id AS participant_id, p.display_name, p.email,
		       s.total_points, s.correct_answers, s.total_questions,
		       s.completion_time_seconds, s.completed_at
		FROM scores s
		JOIN participants p ON p.id = s.participant_id
		WHERE s.round_id = ?
	`, roundID).Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	rankEntries(entries)
	s.toCache(key, entries)
	return entries, nil
}

// Invalidate drops cached standings after a submission touches them.
func (s *LeaderboardService) Invalidate(eventID, roundID uint) {
	if s.cache == nil {
		return
	}
	err := s.cache.Delete(
		fmt.Sprintf("leaderboard:event:%d", eventID),
		fmt.Sprintf("leaderboard:round:%d", roundID),
	)
	if err != nil {
		log.Printf("failed to invalidate leaderboard cache: %v", err)
	}
}

func (s *LeaderboardService) fromCache(key string) []LeaderboardEntry {
	if s.cache == nil {
		return nil
	}
	var entries []LeaderboardEntry
	if err := s.cache.GetJSON(key, &entries); err != nil {
		return nil
	}
	return entries
}

func (s *LeaderboardService) toCache(key string, entries []LeaderboardEntry) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(key, entries, leaderboardTTL); err != nil {
		log.Printf("failed to cache leaderboard %s: %v", key, err)
	}
}

// rankEntries sorts in place and assigns competition ranks: entries tied on
// points and completion time share a rank, and the next distinct entry
// resumes at its 1-based row index, leaving gaps. The completed-at tiebreak
// orders rows but does not split a tie group.
func rankEntries(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].CompletionTimeSeconds != entries[j].CompletionTimeSeconds {
			return entries[i].CompletionTimeSeconds < entries[j].CompletionTimeSeconds
		}
		return earlier(entries[i].CompletedAt, entries[j].CompletedAt)
	})

	for i := range entries {
		if i > 0 &&
			entries[i].TotalPoints == entries[i-1].TotalPoints &&
			entries[i].CompletionTimeSeconds == entries[i-1].CompletionTimeSeconds {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
		entries[i].Accuracy = accuracy(entries[i].CorrectAnswers, entries[i].TotalQuestions)
	}
}

// earlier treats a missing completion timestamp as later than any set one.
func earlier(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

func accuracy(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
