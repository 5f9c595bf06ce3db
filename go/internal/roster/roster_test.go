package roster

import (
	"testing"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/testutil"
)

func seeded(t *testing.T) (*Roster, []models.Athlete, models.Team) {
	t.Helper()
	r := New()
	athletes := []models.Athlete{
		testutil.Athlete(t, "Alice Tan"),
		testutil.Athlete(t, "Ben Ong"),
		testutil.Athlete(t, "Cara Lee"),
		testutil.Athlete(t, "Dan Koh"),
		testutil.Athlete(t, "Eve Ng"),
	}
	for _, a := range athletes {
		if err := r.AddAthlete(a); err != nil {
			t.Fatalf("add athlete: %v", err)
		}
	}
	team := testutil.Team(t, "Alpha", athletes[:4]...)
	if err := r.AddTeam(team); err != nil {
		t.Fatalf("add team: %v", err)
	}
	return r, athletes, team
}

func TestAddAthleteRejectsDuplicateIdentity(t *testing.T) {
	r := New()
	if err := r.AddAthlete(testutil.Athlete(t, "Alice Tan")); err != nil {
		t.Fatalf("add athlete: %v", err)
	}

	err := r.AddAthlete(testutil.Athlete(t, "ALICE tan"))
	if !apperrors.HasCode(err, apperrors.CodeDuplicateIdentity) {
		t.Fatalf("expected duplicate identity, got %v", err)
	}
	if len(r.Athletes()) != 1 {
		t.Fatalf("expected 1 athlete, got %d", len(r.Athletes()))
	}
}

func TestAddTeamRejectsDuplicateAndUnknownMembers(t *testing.T) {
	r, athletes, _ := seeded(t)

	dup := testutil.Team(t, "alpha", athletes[1:5]...)
	if err := r.AddTeam(dup); !apperrors.HasCode(err, apperrors.CodeDuplicateIdentity) {
		t.Fatalf("expected duplicate identity, got %v", err)
	}

	stranger := testutil.Athlete(t, "Zed Quek")
	orphan := testutil.Team(t, "Bravo", athletes[1], athletes[2], athletes[3], stranger)
	if err := r.AddTeam(orphan); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown member, got %v", err)
	}
	if len(r.Teams()) != 1 {
		t.Fatalf("expected roster to keep one team, got %d", len(r.Teams()))
	}
}

func TestReplaceTeam(t *testing.T) {
	r, _, team := seeded(t)
	s := testutil.Session(t, "Track", testutil.At(7, 0), testutil.At(8, 0))
	updated := team.WithSession(s)

	if err := r.ReplaceTeam(team, updated); err != nil {
		t.Fatalf("replace team: %v", err)
	}
	got, ok := r.Team("ALPHA")
	if !ok || !got.HasSession(s) {
		t.Fatalf("expected replaced team with session, got %v", got)
	}

	// The stale value is no longer present.
	if err := r.ReplaceTeam(team, updated); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found for stale team, got %v", err)
	}
}

func TestTeamsContainingAndRemoveAthlete(t *testing.T) {
	r, athletes, team := seeded(t)

	if got := r.TeamsContaining(athletes[0]); len(got) != 1 || !got[0].SameTeam(team) {
		t.Fatalf("expected Alpha to contain Alice, got %v", got)
	}
	if got := r.TeamsContaining(athletes[4]); len(got) != 0 {
		t.Fatalf("expected Eve to be on no team, got %v", got)
	}

	if err := r.RemoveAthlete(athletes[0]); !apperrors.HasCode(err, apperrors.CodeMemberAlreadyAssigned) {
		t.Fatalf("expected member already assigned, got %v", err)
	}
	if err := r.RemoveAthlete(athletes[4]); err != nil {
		t.Fatalf("remove athlete: %v", err)
	}
	if _, ok := r.Athlete("Eve Ng"); ok {
		t.Fatal("expected Eve to be removed")
	}
	if _, ok := r.Athlete("dan koh"); !ok {
		t.Fatal("expected index to survive removal")
	}
}

func TestSetAthleteRewritesTeams(t *testing.T) {
	r, athletes, _ := seeded(t)
	newName := "Alicia Tan"
	edited, err := athletes[0].Apply(models.AthleteUpdate{Name: &newName}, testutil.Clock())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := r.SetAthlete(athletes[0], edited); err != nil {
		t.Fatalf("set athlete: %v", err)
	}

	team, _ := r.Team("Alpha")
	if team.HasMember(athletes[0]) || !team.HasMember(edited) {
		t.Fatalf("expected team to reference the edited athlete, got %v", team)
	}
	if _, ok := r.Athlete("Alice Tan"); ok {
		t.Fatal("expected old identity to be gone")
	}

	taken := testutil.Athlete(t, "Ben Ong")
	if err := r.SetAthlete(edited, taken); !apperrors.HasCode(err, apperrors.CodeDuplicateIdentity) {
		t.Fatalf("expected duplicate identity, got %v", err)
	}
}

func TestEmptinessQueries(t *testing.T) {
	r := New()
	if !r.AthletesEmpty() || !r.TeamsEmpty() {
		t.Fatal("expected new roster to be empty")
	}
	r, _, _ = seeded(t)
	if r.AthletesEmpty() || r.TeamsEmpty() {
		t.Fatal("expected seeded roster not to be empty")
	}
}

func TestCloneRestoreAndListeners(t *testing.T) {
	r, athletes, team := seeded(t)

	var changes []Change
	unsubscribe := r.OnChange(func(c Change) { changes = append(changes, c) })

	backup := r.Clone()
	if err := r.RemoveTeam(team); err != nil {
		t.Fatalf("remove team: %v", err)
	}
	if err := r.RemoveAthlete(athletes[0]); err != nil {
		t.Fatalf("remove athlete: %v", err)
	}
	r.Restore(backup)

	if len(r.Teams()) != 1 || len(r.Athletes()) != 5 {
		t.Fatalf("expected restore to bring back content, got %d teams %d athletes", len(r.Teams()), len(r.Athletes()))
	}
	if len(changes) != 3 || !changes[0].Has(TeamsChanged) || !changes[1].Has(AthletesChanged) {
		t.Fatalf("unexpected change notifications %v", changes)
	}

	unsubscribe()
	_ = r.AddAthlete(testutil.Athlete(t, "Finn Ho"))
	if len(changes) != 3 {
		t.Fatal("expected no notification after unsubscribe")
	}
}

func TestResetIsAllOrNothing(t *testing.T) {
	r, athletes, _ := seeded(t)
	dup := []models.Athlete{athletes[0], testutil.Athlete(t, "alice tan")}

	if err := r.Reset(dup, nil); !apperrors.HasCode(err, apperrors.CodeDuplicateIdentity) {
		t.Fatalf("expected duplicate identity, got %v", err)
	}
	if len(r.Athletes()) != 5 || len(r.Teams()) != 1 {
		t.Fatal("expected failed reset to leave the roster unchanged")
	}
}
