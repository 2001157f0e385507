package bracket

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// vp builds a viewpoint with a pre-resolved exposure triple.
func vp(path string, fnumber float64, shutter float64, iso float64) *Viewpoint {
	return &Viewpoint{Path: path, Exp: Exposure{Fnumber: fnumber, Shutter: shutter, ISO: iso}}
}

func groupPaths(groups []Group) [][]string {
	out := [][]string{}
	for _, g := range groups {
		paths := []string{}
		for _, v := range g {
			paths = append(paths, v.Path)
		}
		out = append(out, paths)
	}
	return out
}

func TestGroupSingleAscendingRun(t *testing.T) {
	views := []*Viewpoint{
		vp("d/1.jpg", 2.8, 0.001, 100),
		vp("d/2.jpg", 2.8, 0.005, 100),
		vp("d/3.jpg", 2.8, 0.01, 100),
		vp("d/4.jpg", 2.8, 0.05, 100),
		vp("d/5.jpg", 2.8, 0.1, 100),
	}

	groups := group(views)
	if len(groups) != 1 || len(groups[0]) != 5 {
		t.Fatalf("group() = %v groups %v, want one group of 5", len(groups), groupPaths(groups))
	}
}

func TestGroupDirectoryBoundary(t *testing.T) {
	// The values keep ascending across the directory change, so only
	// the dataset boundary can split them.
	views := []*Viewpoint{
		vp("a/1.jpg", 2.8, 0.01, 100),
		vp("a/2.jpg", 2.8, 0.02, 100),
		vp("b/1.jpg", 2.8, 0.04, 100),
		vp("b/2.jpg", 2.8, 0.08, 100),
	}

	want := [][]string{
		{"a/1.jpg", "a/2.jpg"},
		{"b/1.jpg", "b/2.jpg"},
	}

	if diff := cmp.Diff(want, groupPaths(group(views))); diff != "" {
		t.Errorf("group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupBoundaryForcesExactlyOneBreak(t *testing.T) {
	// After the forced break, ascending values in the new directory
	// must stay in one group.
	views := []*Viewpoint{
		vp("a/1.jpg", 2.8, 0.01, 100),
		vp("b/1.jpg", 2.8, 0.02, 100),
		vp("b/2.jpg", 2.8, 0.04, 100),
		vp("b/3.jpg", 2.8, 0.08, 100),
	}

	want := [][]string{
		{"a/1.jpg"},
		{"b/1.jpg", "b/2.jpg", "b/3.jpg"},
	}

	if diff := cmp.Diff(want, groupPaths(group(views))); diff != "" {
		t.Errorf("group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupWrapAround(t *testing.T) {
	// Sorting is aperture-major, so the wide-open shots come first and
	// the exposure value drops when the aperture steps up.
	views := []*Viewpoint{
		vp("d/1.jpg", 2.8, 0.01, 100),
		vp("d/2.jpg", 2.8, 0.02, 100),
		vp("d/3.jpg", 8.0, 0.01, 100),
		vp("d/4.jpg", 8.0, 0.02, 100),
	}

	want := [][]string{
		{"d/1.jpg", "d/2.jpg"},
		{"d/3.jpg", "d/4.jpg"},
	}

	if diff := cmp.Diff(want, groupPaths(group(views))); diff != "" {
		t.Errorf("group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupEmptyInput(t *testing.T) {
	if groups := group(nil); len(groups) != 0 {
		t.Errorf("group(nil) = %v, want none", groupPaths(groups))
	}
}

func TestGroupPartition(t *testing.T) {
	// Every input appears in exactly one group, whatever the input
	// order.
	views := []*Viewpoint{
		vp("a/1.jpg", 2.8, 0.01, 100),
		vp("a/2.jpg", 2.8, 0.02, 100),
		vp("a/3.jpg", 2.8, 0.04, 100),
		vp("b/1.jpg", 4.0, 0.01, 200),
		vp("b/2.jpg", 4.0, 0.02, 200),
		vp("c/1.jpg", 5.6, 0.5, 800),
	}

	wantPaths := []string{}
	for _, v := range views {
		wantPaths = append(wantPaths, v.Path)
	}
	sort.Strings(wantPaths)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]*Viewpoint, len(views))
		copy(shuffled, views)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		gotPaths := []string{}
		for _, g := range group(shuffled) {
			if len(g) == 0 {
				t.Fatal("group() returned an empty group")
			}
			for _, v := range g {
				gotPaths = append(gotPaths, v.Path)
			}
		}
		sort.Strings(gotPaths)

		if diff := cmp.Diff(wantPaths, gotPaths); diff != "" {
			t.Fatalf("group() is not a partition (-want +got):\n%s", diff)
		}
	}
}

func TestGroupUnusableShutterFallback(t *testing.T) {
	// A zero shutter is unusable: its value falls back to 1/200s,
	// which still ascends into the 1/100s shot. One group, no split.
	views := []*Viewpoint{
		vp("d/1.jpg", 2.8, 0.0, 100),
		vp("d/2.jpg", 2.8, 0.01, 100),
	}

	groups := group(views)
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("group() = %v, want one group of 2", groupPaths(groups))
	}
}
