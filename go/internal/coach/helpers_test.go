package coach

import (
	"github.com/relaycoach/relaycoach/go/internal/models"
	"github.com/relaycoach/relaycoach/go/internal/testutil"
)

func nameUpdate(name string) models.AthleteUpdate {
	return models.AthleteUpdate{Name: &name}
}

func withPhone(name, phone string) AddAthleteRequest {
	in := testutil.AthleteInput(name)
	in.Phone = phone
	return AddAthleteRequest{Athlete: in}
}
