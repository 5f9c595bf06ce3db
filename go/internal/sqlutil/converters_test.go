package sqlutil

import (
	"slices"
	"testing"
)

func TestNullIfEmpty(t *testing.T) {
	if NullIfEmpty("").Valid {
		t.Fatal("expected empty string to be NULL")
	}
	if got := FromSqlString(NullIfEmpty("anchor"), ""); got != "anchor" {
		t.Fatalf("expected anchor, got %q", got)
	}
}

func TestNullJSONRoundTrip(t *testing.T) {
	empty, err := ToNullJSON[string](nil)
	if err != nil || empty.Valid {
		t.Fatalf("expected NULL for no tags, got %+v (%v)", empty, err)
	}

	raw, err := ToNullJSON([]string{"flu", "sprinter"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := FromNullJSON[string](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !slices.Equal(got, []string{"flu", "sprinter"}) {
		t.Fatalf("unexpected tags %v", got)
	}
}
