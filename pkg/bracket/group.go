package bracket

import (
	"path/filepath"
	"sort"

	"k8s.io/klog/v2"
)

// group partitions viewpoints into exposure brackets. Input order does
// not matter: viewpoints are sorted by exposure triple first with path
// as the tiebreak for identical triples, then a
// single walk opens a new group on every directory change and on every
// strict drop in exposure value (the wrap to a new bracket).
func group(views []*Viewpoint) []Group {
	sorted := make([]*Viewpoint, len(views))
	copy(sorted, views)
	sort.Slice(sorted, func(i, j int) bool {
		// Ties on the triple fall back to the path, so the walk (and
		// the dataset boundaries it sees) never depends on input order.
		if sorted[i].Exp != sorted[j].Exp {
			return sorted[i].Exp.less(sorted[j].Exp)
		}
		return sorted[i].Path < sorted[j].Path
	})

	var groups []Group
	var cur Group

	prevDir := ""
	prevValue := 0.0
	havePrev := false
	forceNew := false

	for _, v := range sorted {
		dir := filepath.Dir(v.Path)

		// A directory change means a new dataset. Force the break on
		// this comparison even if the exposure values keep ascending.
		if havePrev && dir != prevDir {
			forceNew = true
		}

		value := v.Exp.Value()

		if (havePrev && value < prevValue) || forceNew {
			klog.V(1).Infof("new group at %s (value %.6f, prev %.6f)", v.Path, value, prevValue)
			groups = append(groups, cur)
			cur = Group{v}
		} else {
			cur = append(cur, v)
		}

		prevDir = dir
		prevValue = value
		havePrev = true
		forceNew = false
	}

	if len(cur) > 0 {
		groups = append(groups, cur)
	}

	return groups
}

// identical reports whether every viewpoint in g shares one triple.
func identical(g Group) bool {
	for _, v := range g[1:] {
		if v.Exp != g[0].Exp {
			return false
		}
	}
	return true
}
