package smartcut

// Similarity is the Jaccard index over the distinct characters of a and b.
// It is 0 when either string is empty.
func Similarity(a, b string) float64 {
	setA := runeSet(a)
	setB := runeSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	inter := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

func distinctRunes(s string) int {
	return len(runeSet(s))
}
