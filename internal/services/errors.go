package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveSession is returned when a participant acts before any
	// round has been started.
	ErrNoActiveSession = errors.New("no active session")
	// ErrQuestionNotInActiveRound is returned when a submitted question code
	// does not belong to the session's current round.
	ErrQuestionNotInActiveRound = errors.New("question not found in active round")
	// ErrAlreadyAnswered is returned when a response for the question already
	// exists, including when a concurrent insert loses to the unique index.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrParticipantInactive is returned before touching any session state.
	ErrParticipantInactive = errors.New("participant is not active")
	// ErrEventNotFound / ErrRoundNotFound / ErrQuestionNotFound cover bad ids.
	ErrEventNotFound       = errors.New("event not found")
	ErrRoundNotFound       = errors.New("round not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrInternalState means the session references a round or question that
	// no longer exists. This is surfaced, never silently repaired.
	ErrInternalState = errors.New("session references missing round or question")
)

// RoundNotCompleteError carries the progress counts so the client can resume
// the unfinished round without guessing.
type RoundNotCompleteError struct {
	RoundID  uint `json:"round_id"`
	Answered int  `json:"answered"`
	Total    int  `json:"total"`
}

func (e *RoundNotCompleteError) Error() string {
	return fmt.Sprintf("round %d not complete: %d/%d answered", e.RoundID, e.Answered, e.Total)
}

// OutOfOrderError reports a submission whose question order does not match
// the participant's answered count for the round.
type OutOfOrderError struct {
	Expected  int `json:"expected"`
	Submitted int `json:"submitted"`
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("out of order submission: expected question at order %d, got %d", e.Expected, e.Submitted)
}

// TimeExpiredError is returned by StartQuestion when the previous question's
// timer has already run out.
type TimeExpiredError struct {
	ElapsedSeconds        int `json:"elapsed_seconds"`
	EffectiveLimitSeconds int `json:"effective_time_limit"`
}

func (e *TimeExpiredError) Error() string {
	return fmt.Sprintf("time expired: %ds elapsed of %ds limit", e.ElapsedSeconds, e.EffectiveLimitSeconds)
}
