package services

import (
	"fmt"
	"testing"

	"github.com/wpsadi/AssessKit-sub000/pkg/cache"

	miniredis "github.com/alicebob/miniredis/v2"
)

func newCachedLeaderboard(t *testing.T, f *fixture) (*LeaderboardService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewLeaderboardService(f.db, cache.NewRedisCache(mr.Addr())), mr
}

func TestRoundLeaderboardCachedBetweenPolls(t *testing.T) {
	f := newFixture(t)
	lb, mr := newCachedLeaderboard(t, f)

	if _, err := f.svc.StartRound(f.participant.ID, f.event.ID); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := f.svc.SubmitAnswer(f.participant.ID, "Q1", "Paris"); err != nil {
		t.Fatalf("SubmitAnswer Q1: %v", err)
	}

	key := fmt.Sprintf("leaderboard:round:%d", f.roundA.ID)

	entries, err := lb.RoundLeaderboard(f.roundA.ID)
	if err != nil {
		t.Fatalf("RoundLeaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].TotalPoints != 10 {
		t.Fatalf("entries = %+v, want one entry with 10 points", entries)
	}
	if !mr.Exists(key) {
		t.Fatal("first read should populate the cache")
	}

	// A second submission without invalidation is not visible yet: the
	// cached standings win until the TTL runs out.
	if _, err := f.svc.SubmitAnswer(f.participant.ID, "Q2", "4"); err != nil {
		t.Fatalf("SubmitAnswer Q2: %v", err)
	}
	stale, err := lb.RoundLeaderboard(f.roundA.ID)
	if err != nil {
		t.Fatalf("RoundLeaderboard (cached): %v", err)
	}
	if stale[0].TotalPoints != 10 {
		t.Fatalf("cached TotalPoints = %d, want stale 10", stale[0].TotalPoints)
	}

	mr.FastForward(leaderboardTTL)

	fresh, err := lb.RoundLeaderboard(f.roundA.ID)
	if err != nil {
		t.Fatalf("RoundLeaderboard (after expiry): %v", err)
	}
	if fresh[0].TotalPoints != 20 {
		t.Fatalf("TotalPoints after expiry = %d, want recomputed 20", fresh[0].TotalPoints)
	}
}

func TestInvalidateDropsCachedStandings(t *testing.T) {
	f := newFixture(t)
	lb, mr := newCachedLeaderboard(t, f)

	if _, err := f.svc.StartRound(f.participant.ID, f.event.ID); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := f.svc.SubmitAnswer(f.participant.ID, "Q1", "Paris"); err != nil {
		t.Fatalf("SubmitAnswer Q1: %v", err)
	}
	if _, err := lb.RoundLeaderboard(f.roundA.ID); err != nil {
		t.Fatalf("RoundLeaderboard: %v", err)
	}

	roundKey := fmt.Sprintf("leaderboard:round:%d", f.roundA.ID)
	eventKey := fmt.Sprintf("leaderboard:event:%d", f.event.ID)
	if err := mr.Set(eventKey, "[]"); err != nil {
		t.Fatalf("seed event key: %v", err)
	}

	result, err := f.svc.SubmitAnswer(f.participant.ID, "Q2", "4")
	if err != nil {
		t.Fatalf("SubmitAnswer Q2: %v", err)
	}
	lb.Invalidate(result.EventID, result.RoundID)

	if mr.Exists(roundKey) || mr.Exists(eventKey) {
		t.Fatal("invalidation should drop both the round and event keys")
	}

	entries, err := lb.RoundLeaderboard(f.roundA.ID)
	if err != nil {
		t.Fatalf("RoundLeaderboard (after invalidation): %v", err)
	}
	if entries[0].TotalPoints != 20 {
		t.Fatalf("TotalPoints = %d, want 20 after invalidation", entries[0].TotalPoints)
	}
}

func TestNilCacheServesFromStore(t *testing.T) {
	f := newFixture(t)
	lb := NewLeaderboardService(f.db, nil)

	if _, err := f.svc.StartRound(f.participant.ID, f.event.ID); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := f.svc.SubmitAnswer(f.participant.ID, "Q1", "Paris"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	entries, err := lb.RoundLeaderboard(f.roundA.ID)
	if err != nil {
		t.Fatalf("RoundLeaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].TotalPoints != 10 {
		t.Fatalf("entries = %+v, want one entry with 10 points", entries)
	}

	lb.Invalidate(f.event.ID, f.roundA.ID)
}
