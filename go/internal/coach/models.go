package coach

import (
	"time"

	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/view"
)

// Selector addresses an athlete or team by its 1-based position in the
// currently displayed list, or by name when Index is zero.
type Selector struct {
	Index int    `json:"index,omitempty"`
	Name  string `json:"name,omitempty"`
}

// ByIndex selects the entity at a displayed position.
func ByIndex(i int) Selector { return Selector{Index: i} }

// ByName selects the entity with the given name, ignoring case.
func ByName(name string) Selector { return Selector{Name: name} }

type AddAthleteRequest struct {
	Athlete models.AthleteInput `json:"athlete"`
}

type EditAthleteRequest struct {
	Athlete Selector             `json:"athlete"`
	Update  models.AthleteUpdate `json:"update"`
}

type DeleteAthleteRequest struct {
	Athlete Selector `json:"athlete"`
}

type FormTeamRequest struct {
	Name    string     `json:"name"`
	Members []Selector `json:"members"`
}

type DisbandTeamRequest struct {
	Team Selector `json:"team"`
}

type RenameTeamRequest struct {
	Team    Selector `json:"team"`
	NewName string   `json:"new_name"`
}

type SwapMemberRequest struct {
	Team        Selector `json:"team"`
	Outgoing    Selector `json:"outgoing"`
	Replacement Selector `json:"replacement"`
}

type ScheduleSessionRequest struct {
	Team     Selector  `json:"team"`
	Location string    `json:"location"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CancelSessionRequest struct {
	Team    Selector `json:"team"`
	Ordinal int      `json:"ordinal"`
}

type ListSessionsRequest struct {
	Team Selector `json:"team"`
}

type FindAthletesRequest = view.AthleteQuery

type FindTeamsRequest = view.TeamQuery

// Result is the outcome of a command. Only the fields relevant to the
// command are set. Empty marks a listing over an empty collection, as
// opposed to a filter that matched nothing.
type Result struct {
	Message  string
	Empty    bool
	Athletes []models.Athlete
	Teams    []models.Team
	Sessions []models.Session
}
