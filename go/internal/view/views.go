package view

import (
	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/roster"
)

// Views holds one live projection per entity type.
type Views struct {
	Athletes *Projection[models.Athlete]
	Teams    *Projection[models.Team]

	detach func()
}

// Attach builds projections over r and refreshes them whenever r changes.
func Attach(r *roster.Roster) *Views {
	v := &Views{
		Athletes: NewProjection(r.Athletes),
		Teams:    NewProjection(r.Teams),
	}
	v.detach = r.OnChange(func(c roster.Change) {
		if c.Has(roster.AthletesChanged) {
			v.Athletes.Refresh()
		}
		if c.Has(roster.TeamsChanged) {
			v.Teams.Refresh()
		}
	})
	return v
}

// Detach stops following roster changes.
func (v *Views) Detach() {
	if v.detach != nil {
		v.detach()
	}
}
