package testutil

import (
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/relaycoach/relaycoach/go/internal/models"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Now is the instant the fixture clock is frozen at.
var Now = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

// Clock returns a fake clock frozen at Now.
func Clock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Now)
}

// AthleteInput returns a valid input for name with the given tags.
func AthleteInput(name string, tags ...string) models.AthleteInput {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return models.AthleteInput{
		Name:    name,
		Dob:     "2008-04-12",
		Phone:   "91234567",
		Email:   local + "@example.com",
		Address: "12 Stadium Road, #03-11",
		School:  "Jurong High",
		Role:    "anchor",
		Height:  "172.5",
		Weight:  "61",
		Tags:    tags,
	}
}

// Athlete builds a valid athlete called name.
func Athlete(t TB, name string, tags ...string) models.Athlete {
	t.Helper()
	a, err := models.NewAthlete(AthleteInput(name, tags...), Clock())
	if err != nil {
		t.Fatalf("build athlete %q: %v", name, err)
	}
	return a
}

// Team builds a valid team from four members.
func Team(t TB, name string, members ...models.Athlete) models.Team {
	t.Helper()
	team, err := models.NewTeam(models.TeamName(name), members, nil)
	if err != nil {
		t.Fatalf("build team %q: %v", name, err)
	}
	return team
}

// Day is the calendar day sessions built with At fall on.
var Day = time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)

// At returns hh:mm on Day.
func At(hour, minute int) time.Time {
	return Day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// Session builds a valid session.
func Session(t TB, location string, start, end time.Time) models.Session {
	t.Helper()
	s, err := models.NewSession(location, start, end)
	if err != nil {
		t.Fatalf("build session at %s: %v", location, err)
	}
	return s
}
