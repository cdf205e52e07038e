package match

// Pairing is one home/away team assignment produced by the fixture schedule.
type Pairing struct {
	HomeTeamID string
	AwayTeamID string
}

// RoundRobinPairings enumerates one match per unordered pair of distinct
// teams, in a stable order: the pair (i, j) with i < j plays with team i at
// home. With doubleLeg set, the full list is followed by the return legs with
// home and away swapped. Repeated calls over the same input produce the same
// order, which is what keeps match numbering deterministic for a batch.
func RoundRobinPairings(teamIDs []string, doubleLeg bool) []Pairing {
	n := len(teamIDs)
	if n < 2 {
		return nil
	}

	out := make([]Pairing, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, Pairing{HomeTeamID: teamIDs[i], AwayTeamID: teamIDs[j]})
		}
	}

	if doubleLeg {
		firstLeg := len(out)
		for k := 0; k < firstLeg; k++ {
			out = append(out, Pairing{HomeTeamID: out[k].AwayTeamID, AwayTeamID: out[k].HomeTeamID})
		}
	}

	return out
}
