package models

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var testClock = clockwork.NewFakeClockAt(time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC))

func mustAthlete(t *testing.T, name string) Athlete {
	t.Helper()
	a, err := NewAthlete(AthleteInput{
		Name:    name,
		Dob:     "2008-04-12",
		Phone:   "91234567",
		Email:   "runner@example.com",
		Address: "12 Stadium Road, #03-11",
		School:  "Jurong High",
		Role:    "anchor",
		Tags:    []string{"sprinter"},
	}, testClock)
	if err != nil {
		t.Fatalf("build athlete %q: %v", name, err)
	}
	return a
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 21, hour, minute, 0, 0, time.UTC)
}
