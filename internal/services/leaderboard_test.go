package services

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestRankEntriesSortOrder(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []LeaderboardEntry{
		{ParticipantID: 1, TotalPoints: 10, CompletionTimeSeconds: 50},
		{ParticipantID: 2, TotalPoints: 20, CompletionTimeSeconds: 90},
		{ParticipantID: 3, TotalPoints: 20, CompletionTimeSeconds: 40, CompletedAt: timePtr(base.Add(time.Minute))},
		{ParticipantID: 4, TotalPoints: 20, CompletionTimeSeconds: 40, CompletedAt: timePtr(base)},
	}

	rankEntries(entries)

	want := []uint{4, 3, 2, 1}
	for i, id := range want {
		if entries[i].ParticipantID != id {
			t.Fatalf("position %d: expected participant %d, got %d", i, id, entries[i].ParticipantID)
		}
	}
}

func TestCompetitionRankingLeavesGaps(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// Two entries tied on points and time but with different completion
	// timestamps share rank 1; the next distinct entry is rank 3, not 2.
	entries := []LeaderboardEntry{
		{ParticipantID: 1, TotalPoints: 20, CompletionTimeSeconds: 40, CompletedAt: timePtr(base)},
		{ParticipantID: 2, TotalPoints: 20, CompletionTimeSeconds: 40, CompletedAt: timePtr(base.Add(time.Hour))},
		{ParticipantID: 3, TotalPoints: 10, CompletionTimeSeconds: 40},
	}

	rankEntries(entries)

	if entries[0].Rank != 1 || entries[1].Rank != 1 {
		t.Fatalf("tied entries should both be rank 1, got %d and %d", entries[0].Rank, entries[1].Rank)
	}
	if entries[2].Rank != 3 {
		t.Fatalf("entry after a two-way tie should be rank 3, got %d", entries[2].Rank)
	}
}

func TestRankingTieBreakIgnoresTertiaryKey(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []LeaderboardEntry{
		{ParticipantID: 1, TotalPoints: 20, CompletionTimeSeconds: 40, CompletedAt: timePtr(base)},
		{ParticipantID: 2, TotalPoints: 20, CompletionTimeSeconds: 40, CompletedAt: timePtr(base.Add(time.Minute))},
	}

	rankEntries(entries)

	// Earlier finisher sorts first but both share the rank.
	if entries[0].ParticipantID != 1 {
		t.Fatalf("earlier finisher should sort first, got participant %d", entries[0].ParticipantID)
	}
	if entries[0].Rank != entries[1].Rank {
		t.Fatalf("equal points and time are a tie regardless of completed_at: got ranks %d and %d", entries[0].Rank, entries[1].Rank)
	}
}

func TestAccuracy(t *testing.T) {
	cases := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
		{0, 5, 0},
	}
	for _, tc := range cases {
		if got := accuracy(tc.correct, tc.total); got != tc.want {
			t.Errorf("accuracy(%d, %d): expected %d, got %d", tc.correct, tc.total, tc.want, got)
		}
	}
}
