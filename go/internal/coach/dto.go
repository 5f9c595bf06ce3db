package coach

import (
	"time"

	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/schedule"
)

// SessionDTO is a session on the wire. Ordinal is the 1-based position in
// the team's calendar when the session is listed as part of a team.
type SessionDTO struct {
	Ordinal  int       `json:"ordinal,omitempty"`
	Location string    `json:"location"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// TeamDTO is a team on the wire.
type TeamDTO struct {
	Name     string       `json:"name"`
	Members  []string     `json:"members"`
	Sessions []SessionDTO `json:"sessions,omitempty"`
}

// ResultDTO is the response body of every roster procedure.
type ResultDTO struct {
	Message  string                `json:"message"`
	Empty    bool                  `json:"empty,omitempty"`
	Athletes []models.AthleteInput `json:"athletes,omitempty"`
	Teams    []TeamDTO             `json:"teams,omitempty"`
	Sessions []SessionDTO          `json:"sessions,omitempty"`
}

func toSessionDTO(s models.Session) SessionDTO {
	return SessionDTO{Location: s.Location().String(), Start: s.Start(), End: s.End()}
}

func toTeamDTO(t models.Team) TeamDTO {
	dto := TeamDTO{Name: t.Name().String()}
	for _, m := range t.Members() {
		dto.Members = append(dto.Members, m.Name().String())
	}
	for i, s := range schedule.Order(t.Sessions()) {
		sd := toSessionDTO(s)
		sd.Ordinal = i + 1
		dto.Sessions = append(dto.Sessions, sd)
	}
	return dto
}

func toResultDTO(res Result) *ResultDTO {
	dto := &ResultDTO{Message: res.Message, Empty: res.Empty}
	for _, a := range res.Athletes {
		dto.Athletes = append(dto.Athletes, a.Input())
	}
	for _, t := range res.Teams {
		dto.Teams = append(dto.Teams, toTeamDTO(t))
	}
	for _, s := range res.Sessions {
		dto.Sessions = append(dto.Sessions, toSessionDTO(s))
	}
	return dto
}

// AthleteDTOs converts athletes for the wire.
func AthleteDTOs(athletes []models.Athlete) []models.AthleteInput {
	out := make([]models.AthleteInput, len(athletes))
	for i, a := range athletes {
		out[i] = a.Input()
	}
	return out
}

// TeamDTOs converts teams for the wire.
func TeamDTOs(teams []models.Team) []TeamDTO {
	out := make([]TeamDTO, len(teams))
	for i, t := range teams {
		out[i] = toTeamDTO(t)
	}
	return out
}
