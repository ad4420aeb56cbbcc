package layers

import (
	"math/bits"
	"slices"
	"strings"
)

// BaseFile is the least specific env file and always the first candidate.
const BaseFile = ".env"

// Candidates lists the env file names to consider for s, lowest precedence
// first: .env, then one file per non-empty subset of known dimensions
// ordered by subset size and then by position in canonical order, then the
// PR file when pr is non-empty. Names repeated because two dimensions
// share a token appear only at their first position.
func Candidates(s Set, pr string) []string {
	var knownMask uint
	for _, d := range Dimensions {
		if s.Known(d) {
			knownMask |= 1 << uint(d)
		}
	}

	var masks []uint
	for mask := uint(1); mask < 1<<NumDimensions; mask++ {
		if mask&^knownMask == 0 {
			masks = append(masks, mask)
		}
	}
	slices.SortFunc(masks, compareSubsets)

	names := []string{BaseFile}
	seen := map[string]bool{BaseFile: true}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	tokens := make([]string, 0, NumDimensions)
	for _, mask := range masks {
		tokens = tokens[:0]
		for _, d := range Dimensions {
			if mask&(1<<uint(d)) != 0 {
				tokens = append(tokens, s.Token(d))
			}
		}
		add(BaseFile + "." + strings.Join(tokens, "."))
	}

	if pr != "" {
		add(PRFile(pr))
	}
	return names
}

// compareSubsets orders smaller subsets first; equal sizes compare by their
// sorted member positions, lexicographically.
func compareSubsets(a, b uint) int {
	if ca, cb := bits.OnesCount(a), bits.OnesCount(b); ca != cb {
		return ca - cb
	}
	for i := 0; i < NumDimensions; i++ {
		bit := uint(1) << uint(i)
		inA, inB := a&bit != 0, b&bit != 0
		if inA != inB {
			if inA {
				return -1
			}
			return 1
		}
	}
	return 0
}
