package view

import (
	"strings"

	"github.com/relaycoach/relaycoach/go/internal/apperrors"
	"github.com/relaycoach/relaycoach/go/internal/models"
)

const MessageEmptyQuery = "At least one keyword must be given for name, school, role or tag"

// AthleteQuery holds keywords per field. Each entry may carry several
// whitespace separated keywords.
type AthleteQuery struct {
	Names   []string `json:"names,omitempty"`
	Schools []string `json:"schools,omitempty"`
	Roles   []string `json:"roles,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Predicate builds the find predicate: every given field must match, and a
// field matches when any of its keywords is a whole word of the field,
// ignoring case.
func (q AthleteQuery) Predicate() (Predicate[models.Athlete], error) {
	names, schools, roles, tags := keywords(q.Names), keywords(q.Schools), keywords(q.Roles), keywords(q.Tags)
	if len(names)+len(schools)+len(roles)+len(tags) == 0 {
		return nil, apperrors.New(apperrors.CodeEmptyQuery, MessageEmptyQuery)
	}
	return func(a models.Athlete) bool {
		return matchesAny(a.Name().String(), names) &&
			matchesAny(a.School().String(), schools) &&
			matchesAny(a.Role().String(), roles) &&
			hasAnyTag(a.Tags(), tags)
	}, nil
}

// TeamQuery finds teams by team name and member name keywords.
type TeamQuery struct {
	Names   []string `json:"names,omitempty"`
	Members []string `json:"members,omitempty"`
}

// Predicate builds the team find predicate with the same rules as AthleteQuery.
func (q TeamQuery) Predicate() (Predicate[models.Team], error) {
	names, members := keywords(q.Names), keywords(q.Members)
	if len(names)+len(members) == 0 {
		return nil, apperrors.New(apperrors.CodeEmptyQuery, "At least one keyword must be given for team name or member")
	}
	return func(t models.Team) bool {
		if !matchesAny(t.Name().String(), names) {
			return false
		}
		if len(members) == 0 {
			return true
		}
		for _, m := range t.Members() {
			if matchesAny(m.Name().String(), members) {
				return true
			}
		}
		return false
	}, nil
}

func keywords(fields []string) []string {
	var out []string
	for _, f := range fields {
		out = append(out, strings.Fields(f)...)
	}
	return out
}

// matchesAny is true when no keywords were given for the field.
func matchesAny(value string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, k := range keywords {
		if ContainsWordIgnoreCase(value, k) {
			return true
		}
	}
	return false
}

func hasAnyTag(tags []models.Tag, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, tag := range tags {
		for _, k := range keywords {
			if models.EqualFold(tag.String(), k) {
				return true
			}
		}
	}
	return false
}

// ContainsWordIgnoreCase reports whether sentence contains word as a whole
// whitespace separated word, ignoring case.
func ContainsWordIgnoreCase(sentence, word string) bool {
	word = strings.TrimSpace(word)
	if word == "" {
		return false
	}
	for _, w := range strings.Fields(sentence) {
		if models.EqualFold(w, word) {
			return true
		}
	}
	return false
}
