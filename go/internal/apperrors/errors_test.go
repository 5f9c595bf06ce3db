package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeDuplicateSession, "This session already exists in the team")

	if !errors.Is(err, Kind(CodeDuplicateSession)) {
		t.Fatal("expected error to match its own code")
	}
	if errors.Is(err, Kind(CodeOverlappingSession)) {
		t.Fatal("expected error not to match a different code")
	}
}

func TestCodeOfThroughWrapping(t *testing.T) {
	base := WithMetadata(CodeMemberAlreadyAssigned, "athlete is on team Bravo", map[string]string{"team": "Bravo"})
	wrapped := fmt.Errorf("form team: %w", base)

	if got := CodeOf(wrapped); got != CodeMemberAlreadyAssigned {
		t.Fatalf("expected %s, got %s", CodeMemberAlreadyAssigned, got)
	}
	if !HasCode(wrapped, CodeMemberAlreadyAssigned) {
		t.Fatal("expected HasCode to see through fmt wrapping")
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatal("expected plain errors to report unknown code")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("bad date")
	err := Wrap(CodeValidation, "invalid date of birth", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
	if err.Error() != "invalid date of birth" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
