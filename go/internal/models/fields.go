package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/relaycoach/relaycoach/go/internal/apperrors"
)

const (
	// NameMaxLength is the maximum number of characters in an athlete name.
	NameMaxLength = 80
	// TeamNameMaxLength is the maximum number of characters in a team name.
	TeamNameMaxLength = 80
	// AddressMaxLength is the maximum number of characters in an address.
	AddressMaxLength = 255
	// LocationMaxLength is the maximum number of characters in a session location.
	LocationMaxLength = 100

	// DobLayout is the accepted date of birth format.
	DobLayout = "2006-01-02"
)

// Constraint messages shown to the user when a field fails validation.
var (
	MessageNameConstraints = fmt.Sprintf("Names can only contain letters, spaces, hyphens (-), apostrophes ('), "+
		"periods (.), slashes (/), commas (,), and parentheses ( ). Must be 1-%d characters long.", NameMaxLength)
	MessageTeamNameConstraints = fmt.Sprintf("Team names can only contain letters, numbers, spaces, hyphens (-), "+
		"apostrophes ('), periods (.), and parentheses ( ). They must not be blank and must be 1-%d characters long.",
		TeamNameMaxLength)
	MessageDobConstraints = "Date of Birth must be a valid calendar date in the format YYYY-MM-DD. " +
		"Must not be blank, and must not be a future date."
	MessagePhoneConstraints   = "Phone numbers should only contain numbers, and it should be at least 3 digits long"
	MessageEmailConstraints   = "Emails should be of the format local-part@domain, where the domain ends with a label of at least 2 characters"
	MessageAddressConstraints = fmt.Sprintf("Addresses may contain letters, numbers, spaces, commas (,), periods (.), "+
		"hyphens (-), apostrophes ('), slashes (/), ampersands (&), hash (#), semicolons (;), and parentheses ( ). "+
		"It must not be blank and must be at most %d characters.", AddressMaxLength)
	MessageSchoolConstraints   = "School must start with a letter or digit and contain only letters, digits, spaces, periods and apostrophes"
	MessageRoleConstraints     = "Role must start with a letter or digit and contain only letters, digits and spaces"
	MessageHeightConstraints   = "Height must be a positive number of centimetres with at most 2 decimal places"
	MessageWeightConstraints   = "Weight must be a positive number of kilograms with at most 2 decimal places"
	MessageTagConstraints      = "Tags names should be alphanumeric"
	MessageLocationConstraints = fmt.Sprintf("Location must not be blank and must be at most %d characters", LocationMaxLength)
)

var (
	nameRegex     = regexp.MustCompile(fmt.Sprintf(`^[\p{L}\p{M} .',()/-]{1,%d}$`, NameMaxLength))
	teamNameRegex = regexp.MustCompile(fmt.Sprintf(`^[\p{L}\p{M}0-9 .'()-]{1,%d}$`, TeamNameMaxLength))
	addressRegex  = regexp.MustCompile(fmt.Sprintf(`^[\p{L}\p{M}0-9 .,'&/#();-]{1,%d}$`, AddressMaxLength))
	phoneRegex    = regexp.MustCompile(`^[0-9]{3,}$`)
	emailRegex    = regexp.MustCompile(`^[A-Za-z0-9]+([+_.-][A-Za-z0-9]+)*@([A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?\.)*[A-Za-z0-9][A-Za-z0-9-]*[A-Za-z0-9]$`)
	schoolRegex   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 .'’]*$`)
	roleRegex     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)
	measureRegex  = regexp.MustCompile(`^[0-9]{1,3}(\.[0-9]{1,2})?$`)
	tagRegex      = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

func invalid(message string) error {
	return apperrors.New(apperrors.CodeValidation, message)
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Name is an athlete's full name. Identity comparisons use Key.
type Name string

// NewName validates an athlete name.
func NewName(s string) (Name, error) {
	if !notBlank(s) || !nameRegex.MatchString(s) {
		return "", invalid(MessageNameConstraints)
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// Key returns the case-insensitive identity key of the name.
func (n Name) Key() string { return Key(string(n)) }

// TeamName is a relay team's display name. Identity comparisons use Key.
type TeamName string

// NewTeamName validates a team name.
func NewTeamName(s string) (TeamName, error) {
	if !notBlank(s) || !teamNameRegex.MatchString(s) {
		return "", invalid(MessageTeamNameConstraints)
	}
	return TeamName(s), nil
}

func (n TeamName) String() string { return string(n) }

// Key returns the case-insensitive identity key of the team name.
func (n TeamName) Key() string { return Key(string(n)) }

// Dob is a date of birth in DobLayout.
type Dob string

// NewDob validates a date of birth against the clock's current date.
func NewDob(s string, clock clockwork.Clock) (Dob, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	parsed, err := time.Parse(DobLayout, strings.TrimSpace(s))
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeValidation, MessageDobConstraints, err)
	}
	now := clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.After(today) {
		return "", invalid(MessageDobConstraints)
	}
	return Dob(parsed.Format(DobLayout)), nil
}

func (d Dob) String() string { return string(d) }

// Phone is a contact number made of digits.
type Phone string

// NewPhone validates a phone number.
func NewPhone(s string) (Phone, error) {
	if !phoneRegex.MatchString(s) {
		return "", invalid(MessagePhoneConstraints)
	}
	return Phone(s), nil
}

func (p Phone) String() string { return string(p) }

// Email is a contact email address.
type Email string

// NewEmail validates an email address.
func NewEmail(s string) (Email, error) {
	if !emailRegex.MatchString(s) {
		return "", invalid(MessageEmailConstraints)
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }

// Address is a postal address.
type Address string

// NewAddress validates an address. The first character must not be whitespace.
func NewAddress(s string) (Address, error) {
	if !notBlank(s) || strings.TrimLeft(s, " \t") != s || !addressRegex.MatchString(s) {
		return "", invalid(MessageAddressConstraints)
	}
	return Address(s), nil
}

func (a Address) String() string { return string(a) }

// School is the athlete's school. Empty means not recorded.
type School string

// NewSchool validates a school; the empty string is accepted.
func NewSchool(s string) (School, error) {
	if s != "" && !schoolRegex.MatchString(s) {
		return "", invalid(MessageSchoolConstraints)
	}
	return School(s), nil
}

func (s School) String() string { return string(s) }

// Role is the athlete's relay role, e.g. "anchor". Empty means not recorded.
type Role string

// NewRole validates a role; the empty string is accepted.
func NewRole(s string) (Role, error) {
	if s != "" && !roleRegex.MatchString(s) {
		return "", invalid(MessageRoleConstraints)
	}
	return Role(s), nil
}

func (r Role) String() string { return string(r) }

// Height in centimetres. Empty means not recorded.
type Height string

// NewHeight validates a height; the empty string is accepted.
func NewHeight(s string) (Height, error) {
	if s != "" && (!measureRegex.MatchString(s) || isZeroMeasure(s)) {
		return "", invalid(MessageHeightConstraints)
	}
	return Height(s), nil
}

func (h Height) String() string { return string(h) }

// Weight in kilograms. Empty means not recorded.
type Weight string

// NewWeight validates a weight; the empty string is accepted.
func NewWeight(s string) (Weight, error) {
	if s != "" && (!measureRegex.MatchString(s) || isZeroMeasure(s)) {
		return "", invalid(MessageWeightConstraints)
	}
	return Weight(s), nil
}

func (w Weight) String() string { return string(w) }

func isZeroMeasure(s string) bool {
	return strings.Trim(s, "0.") == ""
}

// Tag is a free-text label attached to an athlete.
type Tag string

// NewTag validates a tag.
func NewTag(s string) (Tag, error) {
	if !tagRegex.MatchString(s) {
		return "", invalid(MessageTagConstraints)
	}
	return Tag(s), nil
}

func (t Tag) String() string { return string(t) }

// Location is where a session takes place. Stored trimmed.
type Location string

// NewLocation validates a session location.
func NewLocation(s string) (Location, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || len([]rune(trimmed)) > LocationMaxLength {
		return "", invalid(MessageLocationConstraints)
	}
	return Location(trimmed), nil
}

func (l Location) String() string { return string(l) }

// EqualFold reports whether two locations match ignoring case.
func (l Location) EqualFold(other Location) bool {
	return Key(string(l)) == Key(string(other))
}
