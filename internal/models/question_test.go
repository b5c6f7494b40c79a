package models

import "testing"

func TestAcceptsExactMatchOnly(t *testing.T) {
	question := Question{
		AcceptedAnswers: []AcceptedAnswer{
			{Value: "Paris"},
			{Value: "paris, france"},
		},
	}

	if !question.Accepts("Paris") {
		t.Error("exact value should match")
	}
	if question.Accepts("paris") {
		t.Error("matching is case-sensitive; lowercase should not match")
	}
	if question.Accepts(" Paris") {
		t.Error("no trimming: leading whitespace should not match")
	}
	if question.Accepts("Par") {
		t.Error("no partial credit")
	}
}

func TestAcceptsEmptySet(t *testing.T) {
	question := Question{}
	if question.Accepts("anything") {
		t.Error("empty accepted set matches nothing")
	}
}
