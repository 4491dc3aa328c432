package models

import "testing"

func TestRoundStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to RoundStatus
		want     bool
	}{
		{RoundStatusActive, RoundStatusCompleted, true},
		{RoundStatusActive, RoundStatusSkipped, true},
		{RoundStatusActive, RoundStatusActive, true},
		{RoundStatusCompleted, RoundStatusCompleted, true},
		{RoundStatusCompleted, RoundStatusActive, false},
		{RoundStatusSkipped, RoundStatusActive, false},
		{RoundStatusSkipped, RoundStatusCompleted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestRoundType_IsValid(t *testing.T) {
	for _, valid := range []RoundType{RoundTypeTest, RoundTypeInterview, RoundTypeAssignment, RoundTypeGroupDiscussion, RoundTypeHR} {
		if !valid.IsValid() {
			t.Errorf("expected %s to be valid", valid)
		}
	}
	if RoundType("coding").IsValid() {
		t.Errorf("expected unknown round type to be invalid")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":            "acme-corp",
		"  Tata  Consultancy ": "tata-consultancy",
		"AT&T (India)":         "at-t-india",
		"---":                  "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestNewPageResponse(t *testing.T) {
	page := NewPageResponse[Job](nil, 2, 10, 25)
	if page.Items == nil || page.TotalPages != 3 || !page.HasNext || !page.HasPrev {
		t.Fatalf("unexpected page %+v", page)
	}

	last := NewPageResponse([]Job{{ID: "j"}}, 3, 10, 25)
	if last.HasNext {
		t.Fatalf("expected last page to have no next page")
	}
}
