package match

import (
	"reflect"
	"testing"
)

func TestRoundRobinPairings_SingleLeg(t *testing.T) {
	t.Parallel()

	teams := []string{"a", "b", "c", "d"}
	got := RoundRobinPairings(teams, false)
	if len(got) != 6 {
		t.Fatalf("expected n*(n-1)/2 = 6 pairings, got %d", len(got))
	}

	seen := make(map[Pairing]struct{}, len(got))
	for _, p := range got {
		if p.HomeTeamID == p.AwayTeamID {
			t.Fatalf("team paired with itself: %+v", p)
		}
		if _, dup := seen[p]; dup {
			t.Fatalf("duplicate pairing %+v", p)
		}
		seen[p] = struct{}{}
	}
}

func TestRoundRobinPairings_Deterministic(t *testing.T) {
	t.Parallel()

	teams := []string{"a", "b", "c"}
	first := RoundRobinPairings(teams, false)
	second := RoundRobinPairings(teams, false)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("pairings differ between runs: %v vs %v", first, second)
	}

	want := []Pairing{
		{HomeTeamID: "a", AwayTeamID: "b"},
		{HomeTeamID: "a", AwayTeamID: "c"},
		{HomeTeamID: "b", AwayTeamID: "c"},
	}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("unexpected enumeration order: %v", first)
	}
}

func TestRoundRobinPairings_DoubleLeg(t *testing.T) {
	t.Parallel()

	got := RoundRobinPairings([]string{"a", "b", "c"}, true)
	if len(got) != 6 {
		t.Fatalf("expected 6 pairings for double leg, got %d", len(got))
	}
	// Return legs follow the full first-leg list with venues swapped.
	if got[3] != (Pairing{HomeTeamID: "b", AwayTeamID: "a"}) {
		t.Fatalf("unexpected first return leg: %+v", got[3])
	}
}

func TestRoundRobinPairings_TooFewTeams(t *testing.T) {
	t.Parallel()

	if got := RoundRobinPairings([]string{"solo"}, false); got != nil {
		t.Fatalf("expected nil for fewer than two teams, got %v", got)
	}
}
