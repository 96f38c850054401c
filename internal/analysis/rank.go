package analysis

import "sort"

// Importance scoring weights. In-degree approximates blast radius and
// dominates; the role bonus nudges entry points up and the test multiplier
// pushes test files down without zeroing them.
const (
	inDegreeWeight = 0.7
	entryBonus     = 0.2
	coreBonus      = 0.05
	testMultiplier = 0.3
)

// Rank scores every discovered file and returns the index sorted by
// descending importance. Ties keep file-discovery order; no total order
// beyond the score is guaranteed.
//
// order is the discovery-ordered path list. files may hold nil entries for
// paths the parser could not handle; those still get ranked from role and
// in-degree alone. inDegree is the dependency graph's importedBy count per
// path.
func Rank(order []string, files map[string]*ParsedFile, inDegree map[string]int) []FileIndexEntry {
	maxIn := 0
	for _, p := range order {
		if d := inDegree[p]; d > maxIn {
			maxIn = d
		}
	}

	index := make([]FileIndexEntry, 0, len(order))
	for _, p := range order {
		role := ClassifyRole(p)
		entry := FileIndexEntry{
			Path:       p,
			Role:       role,
			Importance: Score(inDegree[p], maxIn, role),
		}
		if f := files[p]; f != nil {
			entry.Imports = f.Imports
		}
		index = append(index, entry)
	}

	sort.SliceStable(index, func(i, j int) bool {
		return index[i].Importance > index[j].Importance
	})

	return index
}

// Score computes clamp01(0.7*inDegree/maxInDegree + roleBonus), then applies
// the test multiplier. maxInDegree of zero contributes nothing.
func Score(inDegree, maxInDegree int, role Role) float64 {
	score := 0.0
	if maxInDegree > 0 {
		score = inDegreeWeight * float64(inDegree) / float64(maxInDegree)
	}
	score += roleBonus(role)
	score = clamp01(score)
	if role == RoleTest {
		score *= testMultiplier
	}
	return score
}

func roleBonus(role Role) float64 {
	switch role {
	case RoleEntry:
		return entryBonus
	case RoleCore:
		return coreBonus
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
