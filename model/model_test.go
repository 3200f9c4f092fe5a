package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAppStateSerializationRoundTrip(t *testing.T) {
	state := AppState{
		Tasks: []Task{
			{
				ID:          "t1",
				Title:       "Finish layout",
				Description: "Left pane first",
				DueDate:     "2026-09-01",
				Priority:    PriorityHigh,
				Category:    "Assignment",
				Completed:   true,
			},
		},
		Habits: []Habit{
			{
				ID:       "h1",
				Name:     "Read",
				Goal:     3,
				Progress: []bool{true, false, true, false, false, false, true},
			},
		},
		Favorites: []int{2, 7},
		Settings: Settings{
			Theme:        ThemeLight,
			WeekStartISO: "2026-08-29",
		},
		EditingTaskID: "t1",
		Resources: ResourceState{
			Items: []Resource{
				{ID: 2, Title: "Go spec", Description: "Language reference", Category: "Docs", Link: "https://go.dev/ref/spec"},
			},
			Status: FetchSuccess,
		},
	}

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got AppState
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(state, got) {
		t.Fatalf("round-trip mismatch\nwant=%+v\ngot=%+v", state, got)
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	if PriorityHigh.Rank() <= PriorityMedium.Rank() || PriorityMedium.Rank() <= PriorityLow.Rank() {
		t.Fatalf("expected High > Medium > Low, got %d/%d/%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
	if Priority("Urgent").Valid() {
		t.Fatalf("expected unknown priority to be invalid")
	}
	if Priority("Urgent").Rank() != 0 {
		t.Fatalf("expected unknown priority rank 0, got %d", Priority("Urgent").Rank())
	}
}

func TestHabitDoneDays(t *testing.T) {
	h := Habit{Progress: []bool{true, true, false, false, true, false, false}}
	if got := h.DoneDays(); got != 3 {
		t.Fatalf("expected 3 done days, got %d", got)
	}
	if got := (Habit{}).DoneDays(); got != 0 {
		t.Fatalf("expected 0 done days for empty progress, got %d", got)
	}
}
