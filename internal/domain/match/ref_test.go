package match

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRef_UUIDShape(t *testing.T) {
	t.Parallel()

	ref, err := ParseRef("0b015c5a-8c2a-45f8-9d4e-1f1a2b3c4d5e")
	if err != nil {
		t.Fatalf("parse uuid token: %v", err)
	}
	if ref.Kind != RefByID || ref.ID != "0b015c5a-8c2a-45f8-9d4e-1f1a2b3c4d5e" {
		t.Fatalf("unexpected ref %+v", ref)
	}
}

func TestParseRef_MalformedUUIDStillRoutedByShape(t *testing.T) {
	t.Parallel()

	// 35 a's plus a trailing hyphen: 36 chars with a hyphen is enough to pick
	// the primary-identifier path; the store lookup will simply miss.
	token := strings.Repeat("a", 35) + "-"
	ref, err := ParseRef(token)
	if err != nil {
		t.Fatalf("parse malformed uuid token: %v", err)
	}
	if ref.Kind != RefByID {
		t.Fatalf("expected id lookup, got %+v", ref)
	}
}

func TestParseRef_36CharsWithoutHyphenIsNotUUID(t *testing.T) {
	t.Parallel()

	token := strings.Repeat("a", 36)
	if _, err := ParseRef(token); !errors.Is(err, ErrInvalidRef) {
		t.Fatalf("expected ErrInvalidRef for non-numeric token, got %v", err)
	}
}

func TestParseRef_MatchNumber(t *testing.T) {
	t.Parallel()

	ref, err := ParseRef("42")
	if err != nil {
		t.Fatalf("parse number token: %v", err)
	}
	if ref.Kind != RefByNumber || ref.Number != 42 {
		t.Fatalf("unexpected ref %+v", ref)
	}
}

func TestParseRef_Invalid(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"", "   ", "not-a-uuid-or-number", "12abc"} {
		if _, err := ParseRef(token); !errors.Is(err, ErrInvalidRef) {
			t.Fatalf("token %q: expected ErrInvalidRef, got %v", token, err)
		}
	}
}
