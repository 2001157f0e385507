package bracket

import "sort"

// histogram counts how many groups exist of each size.
func histogram(groups []Group) map[int]int {
	h := map[int]int{}
	for _, g := range groups {
		h[len(g)]++
	}
	return h
}

// selectSize picks the bracket size to report from a group-size
// histogram: the most frequent size wins, and a tie in frequency goes
// to the larger size. An empty histogram yields 0.
func selectSize(h map[int]int) int {
	type entry struct {
		size  int
		count int
	}

	entries := make([]entry, 0, len(h))
	for size, count := range h {
		entries = append(entries, entry{size: size, count: count})
	}
	if len(entries) == 0 {
		return 0
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].size > entries[j].size
	})

	return entries[0].size
}
