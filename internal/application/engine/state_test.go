package engine

import (
	"testing"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
)

func TestCloneIsDeep(t *testing.T) {
	s := DefaultState()
	s.Orders = []entity.Order{{ID: "o1", Items: []entity.LineItem{line(t, s, "1", 1)}}}
	s.Held = []entity.HeldCart{{ID: "h1", Items: []entity.LineItem{line(t, s, "2", 1)}}}
	s.Staff[0].Attendance = append(s.Staff[0].Attendance, entity.AttendanceRecord{Date: "2024-05-01"})

	c := s.Clone()
	c.Menu[0].Recipe[0].Quantity = 99
	c.Orders[0].Items[0].Quantity = 99
	c.Orders[0].Items[0].Recipe[0].Quantity = 99
	c.Held[0].Items[0].Quantity = 99
	c.Staff[0].Attendance[0].Date = "changed"
	c.Tables[0].CurrentOrderID = "changed"

	switch {
	case s.Menu[0].Recipe[0].Quantity == 99,
		s.Orders[0].Items[0].Quantity == 99,
		s.Orders[0].Items[0].Recipe[0].Quantity == 99,
		s.Held[0].Items[0].Quantity == 99,
		s.Staff[0].Attendance[0].Date == "changed",
		s.Tables[0].CurrentOrderID == "changed":
		t.Fatal("clone shares memory with the original")
	}
}

func TestCloneKeepsEmptySlices(t *testing.T) {
	s := DefaultState()
	s.Payouts = []entity.Payout{}
	s.Held = []entity.HeldCart{}
	s.Staff[0].Attendance = []entity.AttendanceRecord{}
	s.Menu[0].Recipe = []entity.RecipeItem{}

	c := s.Clone()
	switch {
	case c.Payouts == nil, c.Held == nil:
		t.Error("empty collection became nil")
	case c.Staff[0].Attendance == nil:
		t.Error("empty attendance became nil")
	case c.Menu[0].Recipe == nil:
		t.Error("empty recipe became nil")
	}

	var empty State
	if c := empty.Clone(); c.Tables != nil || c.Payouts != nil {
		t.Error("nil collections should stay nil")
	}
}

func TestCollectionCoversEveryKind(t *testing.T) {
	s := &State{}
	for _, kind := range Kinds {
		if s.Collection(kind) == nil {
			t.Errorf("no collection for %q", kind)
		}
	}
	if s.Collection("unknown") != nil {
		t.Error("unknown kind should have no collection")
	}
}

func TestParseMergeStatusPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    MergeStatusPolicy
		wantErr bool
	}{
		{"", MergePreserveStatus, false},
		{"preserve", MergePreserveStatus, false},
		{" RESET ", MergeResetStatus, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMergeStatusPolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMergeStatusPolicy(%q) = %q, %v", tt.in, got, err)
		}
	}
}
