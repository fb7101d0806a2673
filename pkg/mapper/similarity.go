package mapper

// Similarity returns a score in [0, 1] computed as 2*M/T, where T is the
// total length of both strings and M is the number of runes in matching
// blocks. Matching blocks are found by taking the longest common
// substring and recursing on both sides of it. Two empty strings are
// identical.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2 * float64(matches(ra, rb)) / float64(total)
}

func matches(a, b []rune) int {
	i, j, k := longestMatch(a, b)
	if k == 0 {
		return 0
	}
	return k + matches(a[:i], b[:j]) + matches(a[i+k:], b[j+k:])
}

// longestMatch finds the longest common block. Ties go to the block that
// starts earliest in a, then earliest in b.
func longestMatch(a, b []rune) (int, int, int) {
	var besti, bestj, bestk int
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := range a {
		for j := range b {
			if a[i] != b[j] {
				cur[j+1] = 0
				continue
			}
			cur[j+1] = prev[j] + 1
			if cur[j+1] > bestk {
				bestk = cur[j+1]
				besti, bestj = i-bestk+1, j-bestk+1
			}
		}
		prev, cur = cur, prev
	}
	return besti, bestj, bestk
}
