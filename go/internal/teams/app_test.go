package teams

import (
	"errors"
	"testing"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/roster"
	"github.com/relaycoach/relaycoach/go/internal/testutil"
)

type fixture struct {
	roster   *roster.Roster
	enforcer *Enforcer
	athletes map[string]models.Athlete
	alpha    models.Team
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	r := roster.New()
	athletes := make(map[string]models.Athlete)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		a := testutil.Athlete(t, "Runner "+name)
		athletes[name] = a
		if err := r.AddAthlete(a); err != nil {
			t.Fatalf("add athlete: %v", err)
		}
	}
	alpha := testutil.Team(t, "Alpha", athletes["A"], athletes["B"], athletes["C"], athletes["D"])
	if err := r.AddTeam(alpha); err != nil {
		t.Fatalf("add team: %v", err)
	}
	return fixture{roster: r, enforcer: NewEnforcer(r), athletes: athletes, alpha: alpha}
}

func (f fixture) pick(names ...string) []models.Athlete {
	out := make([]models.Athlete, len(names))
	for i, n := range names {
		out[i] = f.athletes[n]
	}
	return out
}

func TestValidateFormation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		req     FormationRequest
		code    apperrors.Code
		wantErr bool
	}{
		{
			name: "valid",
			req:  FormationRequest{Name: "Bravo", Members: f.pick("E", "F", "G", "H")},
		},
		{
			name:    "bad name",
			req:     FormationRequest{Name: "Bravo/1", Members: f.pick("E", "F", "G", "H")},
			code:    apperrors.CodeValidation,
			wantErr: true,
		},
		{
			name:    "three members",
			req:     FormationRequest{Name: "Bravo", Members: f.pick("E", "F", "G")},
			code:    apperrors.CodeInvalidTeamSize,
			wantErr: true,
		},
		{
			name:    "duplicates collapse below four",
			req:     FormationRequest{Name: "Bravo", Members: f.pick("E", "F", "G", "G")},
			code:    apperrors.CodeInvalidTeamSize,
			wantErr: true,
		},
		{
			name:    "name collides ignoring case",
			req:     FormationRequest{Name: "ALPHA", Members: f.pick("E", "F", "G", "H")},
			code:    apperrors.CodeDuplicateTeamName,
			wantErr: true,
		},
		{
			name:    "member on another team",
			req:     FormationRequest{Name: "Bravo", Members: f.pick("A", "F", "G", "H")},
			code:    apperrors.CodeMemberAlreadyAssigned,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team, err := f.enforcer.ValidateFormation(tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(team.Members()) != models.TeamSize {
					t.Fatalf("expected %d members, got %d", models.TeamSize, len(team.Members()))
				}
				return
			}
			if !apperrors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestMemberAlreadyAssignedLeavesTeamsUnchanged(t *testing.T) {
	f := newFixture(t)
	bravo, err := f.enforcer.ValidateFormation(FormationRequest{Name: "Bravo", Members: f.pick("E", "F", "G", "H")})
	if err != nil {
		t.Fatalf("validate bravo: %v", err)
	}
	if err := f.roster.AddTeam(bravo); err != nil {
		t.Fatalf("add bravo: %v", err)
	}
	before := f.roster.Teams()

	_, err = f.enforcer.ValidateFormation(FormationRequest{Name: "Charlie", Members: f.pick("A", "B", "E", "F")})
	if !apperrors.HasCode(err, apperrors.CodeMemberAlreadyAssigned) {
		t.Fatalf("expected member already assigned, got %v", err)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Metadata["team"] != "Alpha" {
		t.Fatalf("expected error to name team Alpha, got %v", err)
	}

	after := f.roster.Teams()
	if len(after) != len(before) {
		t.Fatalf("expected %d teams, got %d", len(before), len(after))
	}
	for i := range before {
		if !before[i].Equal(after[i]) {
			t.Fatalf("team %s changed", before[i].Name())
		}
	}
}

func TestValidateRename(t *testing.T) {
	f := newFixture(t)
	bravo := testutil.Team(t, "Bravo", f.pick("E", "F", "G", "H")...)
	if err := f.roster.AddTeam(bravo); err != nil {
		t.Fatalf("add bravo: %v", err)
	}

	renamed, err := f.enforcer.ValidateRename(RenameRequest{Team: f.alpha, NewName: "ALPHA"})
	if err != nil {
		t.Fatalf("case-only rename: %v", err)
	}
	if renamed.Name() != "ALPHA" {
		t.Fatalf("expected new display name, got %s", renamed.Name())
	}

	if _, err := f.enforcer.ValidateRename(RenameRequest{Team: f.alpha, NewName: "bravo"}); !apperrors.HasCode(err, apperrors.CodeDuplicateTeamName) {
		t.Fatalf("expected duplicate team name, got %v", err)
	}
}

func TestValidateMemberSwap(t *testing.T) {
	f := newFixture(t)
	bravo := testutil.Team(t, "Bravo", f.pick("E", "F", "G", "H")...)
	if err := f.roster.AddTeam(bravo); err != nil {
		t.Fatalf("add bravo: %v", err)
	}
	spare := testutil.Athlete(t, "Runner Spare")
	if err := f.roster.AddAthlete(spare); err != nil {
		t.Fatalf("add spare: %v", err)
	}

	swapped, err := f.enforcer.ValidateMemberSwap(SwapRequest{Team: f.alpha, Outgoing: f.athletes["A"], Replacement: spare})
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if !swapped.HasMember(spare) || swapped.HasMember(f.athletes["A"]) {
		t.Fatalf("unexpected members %v", swapped)
	}

	_, err = f.enforcer.ValidateMemberSwap(SwapRequest{Team: f.alpha, Outgoing: f.athletes["A"], Replacement: f.athletes["E"]})
	if !apperrors.HasCode(err, apperrors.CodeMemberAlreadyAssigned) {
		t.Fatalf("expected member already assigned, got %v", err)
	}
}
