package coach

import (
	"testing"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
	"github.com/relaycoach/relaycoach/go/internal/roster"
	"github.com/relaycoach/relaycoach/go/internal/testutil"
)

func newTestApp(t *testing.T, names ...string) *App {
	t.Helper()
	app := NewApp(roster.New(), testutil.Clock())
	for _, name := range names {
		if _, err := app.AddAthlete(AddAthleteRequest{Athlete: testutil.AthleteInput(name)}); err != nil {
			t.Fatalf("add athlete %s: %v", name, err)
		}
	}
	return app
}

func mustFormAlpha(t *testing.T, app *App) {
	t.Helper()
	_, err := app.FormTeam(FormTeamRequest{
		Name:    "Alpha",
		Members: []Selector{ByIndex(1), ByIndex(2), ByName("cara lee"), ByIndex(4)},
	})
	if err != nil {
		t.Fatalf("form alpha: %v", err)
	}
}

var crew = []string{"Alice Tan", "Ben Ong", "Cara Lee", "Dan Koh", "Eve Ng", "Finn Ho", "Gia Lim", "Hui Min"}

func TestScheduleAndCancelSessions(t *testing.T) {
	app := newTestApp(t, crew...)
	mustFormAlpha(t, app)
	alpha := ByIndex(1)

	schedule := func(location string, sh, sm, eh, em int) error {
		_, err := app.ScheduleSession(ScheduleSessionRequest{
			Team:     alpha,
			Location: location,
			Start:    testutil.At(sh, sm),
			End:      testutil.At(eh, em),
		})
		return err
	}

	if err := schedule("Track", 7, 0, 8, 0); err != nil {
		t.Fatalf("first session: %v", err)
	}
	if err := schedule("Track", 7, 0, 8, 0); !apperrors.HasCode(err, apperrors.CodeDuplicateSession) {
		t.Fatalf("expected duplicate session, got %v", err)
	}
	if err := schedule("Gym", 7, 30, 8, 30); !apperrors.HasCode(err, apperrors.CodeOverlappingSession) {
		t.Fatalf("expected overlapping session, got %v", err)
	}
	if err := schedule("Track", 8, 0, 9, 0); err != nil {
		t.Fatalf("back to back session: %v", err)
	}

	listed, err := app.ListSessions(ListSessionsRequest{Team: alpha})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(listed.Sessions) != 2 || !listed.Sessions[0].Start().Equal(testutil.At(7, 0)) {
		t.Fatalf("unexpected listing %v", listed.Sessions)
	}

	if _, err := app.CancelSession(CancelSessionRequest{Team: alpha, Ordinal: 3}); !apperrors.HasCode(err, apperrors.CodeInvalidSessionIndex) {
		t.Fatalf("expected invalid session index, got %v", err)
	}
	cancelled, err := app.CancelSession(CancelSessionRequest{Team: alpha, Ordinal: 1})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !cancelled.Sessions[0].Start().Equal(testutil.At(7, 0)) {
		t.Fatalf("expected 07:00 session to be cancelled, got %v", cancelled.Sessions[0])
	}

	listed, err = app.ListSessions(ListSessionsRequest{Team: ByName("ALPHA")})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(listed.Sessions) != 1 || !listed.Sessions[0].Start().Equal(testutil.At(8, 0)) {
		t.Fatalf("unexpected remaining sessions %v", listed.Sessions)
	}
}

func TestFormTeamWithAssignedMemberLeavesTeamsUnchanged(t *testing.T) {
	app := newTestApp(t, crew...)
	mustFormAlpha(t, app)
	if _, err := app.FormTeam(FormTeamRequest{Name: "Bravo", Members: []Selector{ByIndex(5), ByIndex(6), ByIndex(7), ByIndex(8)}}); err != nil {
		t.Fatalf("form bravo: %v", err)
	}
	before := app.Roster().Teams()

	_, err := app.FormTeam(FormTeamRequest{Name: "Charlie", Members: []Selector{ByIndex(1), ByIndex(5), ByIndex(6), ByIndex(7)}})
	if !apperrors.HasCode(err, apperrors.CodeMemberAlreadyAssigned) {
		t.Fatalf("expected member already assigned, got %v", err)
	}

	after := app.Roster().Teams()
	if len(after) != 2 || !after[0].Equal(before[0]) || !after[1].Equal(before[1]) {
		t.Fatalf("expected teams to be unchanged, got %v", after)
	}
}

func TestSelectorErrors(t *testing.T) {
	app := newTestApp(t, crew[:4]...)

	tests := []struct {
		name string
		run  func() error
		code apperrors.Code
	}{
		{"athlete index past end", func() error {
			_, err := app.FormTeam(FormTeamRequest{Name: "Alpha", Members: []Selector{ByIndex(1), ByIndex(2), ByIndex(3), ByIndex(9)}})
			return err
		}, apperrors.CodeInvalidAthleteIndex},
		{"unknown athlete name", func() error {
			_, err := app.DeleteAthlete(DeleteAthleteRequest{Athlete: ByName("Nobody Here")})
			return err
		}, apperrors.CodeNotFound},
		{"team index on empty list", func() error {
			_, err := app.ListSessions(ListSessionsRequest{Team: ByIndex(1)})
			return err
		}, apperrors.CodeInvalidTeamIndex},
		{"empty selector", func() error {
			_, err := app.DisbandTeam(DisbandTeamRequest{})
			return err
		}, apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !apperrors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestIndexesFollowTheDisplayedList(t *testing.T) {
	app := newTestApp(t, crew...)
	if _, err := app.FindAthletes(FindAthletesRequest{Names: []string{"eve finn gia hui"}}); err != nil {
		t.Fatalf("find: %v", err)
	}

	// Index 1 is now Eve Ng, the first match.
	res, err := app.FormTeam(FormTeamRequest{Name: "Bravo", Members: []Selector{ByIndex(1), ByIndex(2), ByIndex(3), ByIndex(4)}})
	if err != nil {
		t.Fatalf("form team: %v", err)
	}
	if !res.Teams[0].HasMember(app.Roster().Athletes()[4]) {
		t.Fatalf("expected Bravo to include Eve Ng, got %v", res.Teams[0])
	}
}

func TestListingMessages(t *testing.T) {
	app := newTestApp(t)

	if res := app.ListAthletes(); !res.Empty || res.Message != MessageNoAthletes {
		t.Fatalf("expected empty athlete listing, got %+v", res)
	}
	if res := app.ListTeams(); !res.Empty || res.Message != MessageNoTeams {
		t.Fatalf("expected empty team listing, got %+v", res)
	}
	res, err := app.FindAthletes(FindAthletesRequest{Names: []string{"alice"}})
	if err != nil || !res.Empty || res.Message != MessageNoAthletes {
		t.Fatalf("expected find on empty roster to report no athletes, got %+v (%v)", res, err)
	}

	app = newTestApp(t, crew...)
	res, err = app.FindAthletes(FindAthletesRequest{Names: []string{"zed"}})
	if err != nil || res.Empty || res.Message != MessageNoMatchAthletes {
		t.Fatalf("expected no-match message, got %+v (%v)", res, err)
	}
	res, err = app.FindAthletes(FindAthletesRequest{Names: []string{"alice ben"}})
	if err != nil || res.Message != "2 athlete(s) listed!" {
		t.Fatalf("expected two matches, got %+v (%v)", res, err)
	}
	if _, err := app.FindAthletes(FindAthletesRequest{}); !apperrors.HasCode(err, apperrors.CodeEmptyQuery) {
		t.Fatalf("expected empty query, got %v", err)
	}

	if res := app.ListAthletes(); res.Empty || len(res.Athletes) != len(crew) {
		t.Fatalf("expected listing to clear the filter, got %d athletes", len(res.Athletes))
	}
}

func TestEditAndDeleteAthlete(t *testing.T) {
	app := newTestApp(t, crew...)
	mustFormAlpha(t, app)

	newName := "Alicia Tan"
	if _, err := app.EditAthlete(EditAthleteRequest{Athlete: ByName("alice tan"), Update: nameUpdate(newName)}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	team, _ := app.Roster().Team("Alpha")
	renamed, _ := app.Roster().Athlete(newName)
	if !team.HasMember(renamed) {
		t.Fatalf("expected Alpha to reference the edited athlete, got %v", team)
	}

	if _, err := app.EditAthlete(EditAthleteRequest{Athlete: ByIndex(1)}); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected empty edit to fail validation, got %v", err)
	}
	if _, err := app.DeleteAthlete(DeleteAthleteRequest{Athlete: ByName(newName)}); !apperrors.HasCode(err, apperrors.CodeMemberAlreadyAssigned) {
		t.Fatalf("expected member already assigned, got %v", err)
	}
	if _, err := app.DeleteAthlete(DeleteAthleteRequest{Athlete: ByName("Eve Ng")}); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestRenameSwapAndDisband(t *testing.T) {
	app := newTestApp(t, crew...)
	mustFormAlpha(t, app)

	if _, err := app.RenameTeam(RenameTeamRequest{Team: ByIndex(1), NewName: "Alpha Prime"}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, ok := app.Roster().Team("Alpha"); ok {
		t.Fatal("expected old team name to be gone")
	}

	res, err := app.SwapMember(SwapMemberRequest{Team: ByName("alpha prime"), Outgoing: ByName("Ben Ong"), Replacement: ByName("Eve Ng")})
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if len(res.Teams[0].Members()) != 4 {
		t.Fatalf("expected four members after swap, got %v", res.Teams[0])
	}

	if _, err := app.DisbandTeam(DisbandTeamRequest{Team: ByIndex(1)}); err != nil {
		t.Fatalf("disband: %v", err)
	}
	if !app.Roster().TeamsEmpty() {
		t.Fatal("expected no teams after disbanding")
	}
	if _, err := app.DeleteAthlete(DeleteAthleteRequest{Athlete: ByName("Alice Tan")}); err != nil {
		t.Fatalf("expected members to be free after disbanding: %v", err)
	}
}
