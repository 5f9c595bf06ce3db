package models

import (
	"testing"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
)

func TestFieldValidation(t *testing.T) {
	tests := []struct {
		name  string
		check func() error
		valid bool
	}{
		{"name plain", func() error { _, err := NewName("Alice Tan"); return err }, true},
		{"name punctuation", func() error { _, err := NewName("O'Neil s/o Raj (Jr.)"); return err }, true},
		{"name accented", func() error { _, err := NewName("Zoë Ångström"); return err }, true},
		{"name blank", func() error { _, err := NewName("   "); return err }, false},
		{"name digits", func() error { _, err := NewName("R2D2"); return err }, false},
		{"team name digits", func() error { _, err := NewTeamName("Relay 4x100 (A)"); return err }, true},
		{"team name slash", func() error { _, err := NewTeamName("A/B"); return err }, false},
		{"phone short", func() error { _, err := NewPhone("91"); return err }, false},
		{"phone ok", func() error { _, err := NewPhone("911"); return err }, true},
		{"email ok", func() error { _, err := NewEmail("a.b+c@mail.example.com"); return err }, true},
		{"email one letter tld", func() error { _, err := NewEmail("a@b.c"); return err }, false},
		{"email no at", func() error { _, err := NewEmail("ab.com"); return err }, false},
		{"address leading space", func() error { _, err := NewAddress(" 1 Road"); return err }, false},
		{"address ok", func() error { _, err := NewAddress("Blk 1, #01-02 Road; (East)"); return err }, true},
		{"school empty", func() error { _, err := NewSchool(""); return err }, true},
		{"school leading space", func() error { _, err := NewSchool(" Jurong"); return err }, false},
		{"role ok", func() error { _, err := NewRole("lead off"); return err }, true},
		{"role symbol", func() error { _, err := NewRole("anchor!"); return err }, false},
		{"height ok", func() error { _, err := NewHeight("175.5"); return err }, true},
		{"height zero", func() error { _, err := NewHeight("0"); return err }, false},
		{"weight text", func() error { _, err := NewWeight("heavy"); return err }, false},
		{"tag space", func() error { _, err := NewTag("knee injury"); return err }, false},
		{"location blank", func() error { _, err := NewLocation("  "); return err }, false},
		{"location ok", func() error { _, err := NewLocation("Track"); return err }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if tt.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.valid && !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestNewDobRejectsFutureAndImpossibleDates(t *testing.T) {
	if _, err := NewDob("2025-10-01", testClock); err != nil {
		t.Fatalf("expected today to be accepted: %v", err)
	}
	if _, err := NewDob("2025-10-02", testClock); err == nil {
		t.Fatal("expected tomorrow to be rejected")
	}
	if _, err := NewDob("2023-02-30", testClock); err == nil {
		t.Fatal("expected impossible date to be rejected")
	}
	if _, err := NewDob("12-04-2008", testClock); err == nil {
		t.Fatal("expected wrong layout to be rejected")
	}
}

func TestKeyFoldsCase(t *testing.T) {
	if Key("  Alice TAN ") != Key("alice tan") {
		t.Fatal("expected keys to match ignoring case and outer space")
	}
	if EqualFold("Alpha", "Alphas") {
		t.Fatal("expected different names not to match")
	}
}
