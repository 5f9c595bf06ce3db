package teams

import "github.com/relaycoach/relaycoach/go/internal/models"

// FormationRequest carries the resolved candidates for a new team.
// Members may contain duplicates; they are collapsed by identity.
type FormationRequest struct {
	Name    string           `json:"name"`
	Members []models.Athlete `json:"-"`
}

// RenameRequest renames an existing team.
type RenameRequest struct {
	Team    models.Team `json:"-"`
	NewName string      `json:"new_name"`
}

// SwapRequest replaces one member of a team with another athlete.
type SwapRequest struct {
	Team        models.Team    `json:"-"`
	Outgoing    models.Athlete `json:"-"`
	Replacement models.Athlete `json:"-"`
}
