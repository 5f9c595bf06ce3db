package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonboulle/clockwork"
)

// Athlete is an immutable roster entry. Identity is the case-insensitive name.
type Athlete struct {
	name    Name
	dob     Dob
	phone   Phone
	email   Email
	address Address
	school  School
	role    Role
	height  Height
	weight  Weight
	tags    []Tag // sorted, unique
}

// AthleteInput is the raw attribute set an Athlete is built from.
// It is also the lossless export form used by persistence adapters.
type AthleteInput struct {
	Name    string   `json:"name" yaml:"name"`
	Dob     string   `json:"dob" yaml:"dob"`
	Phone   string   `json:"phone" yaml:"phone"`
	Email   string   `json:"email" yaml:"email"`
	Address string   `json:"address" yaml:"address"`
	School  string   `json:"school,omitempty" yaml:"school,omitempty"`
	Role    string   `json:"role,omitempty" yaml:"role,omitempty"`
	Height  string   `json:"height,omitempty" yaml:"height,omitempty"`
	Weight  string   `json:"weight,omitempty" yaml:"weight,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// AthleteUpdate carries the fields to change on an existing athlete.
// Nil fields are left untouched; a non-nil Tags replaces the whole tag set.
type AthleteUpdate struct {
	Name    *string   `json:"name,omitempty"`
	Dob     *string   `json:"dob,omitempty"`
	Phone   *string   `json:"phone,omitempty"`
	Email   *string   `json:"email,omitempty"`
	Address *string   `json:"address,omitempty"`
	School  *string   `json:"school,omitempty"`
	Role    *string   `json:"role,omitempty"`
	Height  *string   `json:"height,omitempty"`
	Weight  *string   `json:"weight,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u AthleteUpdate) IsEmpty() bool {
	return u.Name == nil && u.Dob == nil && u.Phone == nil && u.Email == nil && u.Address == nil &&
		u.School == nil && u.Role == nil && u.Height == nil && u.Weight == nil && u.Tags == nil
}

// NewAthlete validates every field of input and builds an Athlete.
// The clock decides what "today" is for the date of birth rule.
func NewAthlete(input AthleteInput, clock clockwork.Clock) (Athlete, error) {
	var (
		a   Athlete
		err error
	)
	if a.name, err = NewName(input.Name); err != nil {
		return Athlete{}, err
	}
	if a.dob, err = NewDob(input.Dob, clock); err != nil {
		return Athlete{}, err
	}
	if a.phone, err = NewPhone(input.Phone); err != nil {
		return Athlete{}, err
	}
	if a.email, err = NewEmail(input.Email); err != nil {
		return Athlete{}, err
	}
	if a.address, err = NewAddress(input.Address); err != nil {
		return Athlete{}, err
	}
	if a.school, err = NewSchool(input.School); err != nil {
		return Athlete{}, err
	}
	if a.role, err = NewRole(input.Role); err != nil {
		return Athlete{}, err
	}
	if a.height, err = NewHeight(input.Height); err != nil {
		return Athlete{}, err
	}
	if a.weight, err = NewWeight(input.Weight); err != nil {
		return Athlete{}, err
	}
	for _, raw := range input.Tags {
		tag, err := NewTag(raw)
		if err != nil {
			return Athlete{}, err
		}
		if !slices.Contains(a.tags, tag) {
			a.tags = append(a.tags, tag)
		}
	}
	slices.Sort(a.tags)
	return a, nil
}

// Apply returns a new Athlete with the update's fields replaced.
// The receiver is never modified.
func (a Athlete) Apply(update AthleteUpdate, clock clockwork.Clock) (Athlete, error) {
	input := a.Input()
	if update.Name != nil {
		input.Name = *update.Name
	}
	if update.Dob != nil {
		input.Dob = *update.Dob
	}
	if update.Phone != nil {
		input.Phone = *update.Phone
	}
	if update.Email != nil {
		input.Email = *update.Email
	}
	if update.Address != nil {
		input.Address = *update.Address
	}
	if update.School != nil {
		input.School = *update.School
	}
	if update.Role != nil {
		input.Role = *update.Role
	}
	if update.Height != nil {
		input.Height = *update.Height
	}
	if update.Weight != nil {
		input.Weight = *update.Weight
	}
	if update.Tags != nil {
		input.Tags = slices.Clone(*update.Tags)
	}
	return NewAthlete(input, clock)
}

// Input exports the athlete's attributes.
func (a Athlete) Input() AthleteInput {
	tags := make([]string, len(a.tags))
	for i, t := range a.tags {
		tags[i] = string(t)
	}
	return AthleteInput{
		Name:    string(a.name),
		Dob:     string(a.dob),
		Phone:   string(a.phone),
		Email:   string(a.email),
		Address: string(a.address),
		School:  string(a.school),
		Role:    string(a.role),
		Height:  string(a.height),
		Weight:  string(a.weight),
		Tags:    tags,
	}
}

func (a Athlete) Name() Name       { return a.name }
func (a Athlete) Dob() Dob         { return a.dob }
func (a Athlete) Phone() Phone     { return a.phone }
func (a Athlete) Email() Email     { return a.email }
func (a Athlete) Address() Address { return a.address }
func (a Athlete) School() School   { return a.school }
func (a Athlete) Role() Role       { return a.role }
func (a Athlete) Height() Height   { return a.height }
func (a Athlete) Weight() Weight   { return a.weight }

// Tags returns a copy of the athlete's sorted tags.
func (a Athlete) Tags() []Tag {
	return slices.Clone(a.tags)
}

// Key returns the athlete's identity key.
func (a Athlete) Key() string {
	return a.name.Key()
}

// IsZero reports whether a was never built.
func (a Athlete) IsZero() bool {
	return a.name == ""
}

// SameAthlete reports whether both values identify the same athlete.
func (a Athlete) SameAthlete(other Athlete) bool {
	return a.Key() == other.Key()
}

// Equal compares every field; the name is compared case-insensitively.
func (a Athlete) Equal(other Athlete) bool {
	return a.SameAthlete(other) &&
		a.dob == other.dob &&
		a.phone == other.phone &&
		a.email == other.email &&
		a.address == other.address &&
		a.school == other.school &&
		a.role == other.role &&
		a.height == other.height &&
		a.weight == other.weight &&
		slices.Equal(a.tags, other.tags)
}

func (a Athlete) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s; DOB: %s; Phone: %s; Email: %s; Address: %s",
		a.name, a.dob, a.phone, a.email, a.address)
	fmt.Fprintf(&b, "; School: %s; Role: %s; Height: %s; Weight: %s; Tags: ",
		a.school, a.role, a.height, a.weight)
	for _, t := range a.tags {
		fmt.Fprintf(&b, "[%s]", t)
	}
	return b.String()
}
