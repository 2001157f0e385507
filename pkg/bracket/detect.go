package bracket

import (
	"k8s.io/klog/v2"
)

// Detect decides how many bracketed exposures make up each capture in
// views. A nonzero userBrackets bypasses detection: it is reported
// as-is, with ValidUserOverride false when it does not evenly divide
// the number of images.
//
// Degenerate metadata is never an error. An image with no metadata at
// all yields 0 ("undetermined"); an image with neither a usable
// f-number nor a usable shutter speed yields 1 ("no bracketing").
func Detect(views []*Viewpoint, userBrackets int) *Decision {
	if userBrackets != 0 {
		d := &Decision{
			NbBrackets:        userBrackets,
			ValidUserOverride: len(views)%userBrackets == 0,
		}
		if !d.ValidUserOverride {
			klog.Warningf("%d brackets is not a multiple of %d images", userBrackets, len(views))
		}
		return d
	}

	for _, v := range views {
		// A present-but-empty record is not a missing blob: it falls
		// through to the unresolvable-exposure check below.
		if v.Meta == nil {
			klog.Warningf("%s has no metadata, cannot detect bracketing", v.Path)
			return &Decision{NbBrackets: 0, ValidUserOverride: true}
		}
	}

	// The triples are annotated onto copies: callers may share views
	// across concurrent invocations.
	annotated := make([]*Viewpoint, 0, len(views))
	for _, v := range views {
		exp := v.Meta.exposure()
		klog.V(1).Infof("%s: f/%.1f %.5fs ISO %.0f", v.Path, exp.Fnumber, exp.Shutter, exp.ISO)

		if exp.Value() == Unknown {
			klog.Warningf("%s has neither shutter speed nor f-number, assuming single exposures", v.Path)
			return &Decision{NbBrackets: 1, ValidUserOverride: true}
		}

		annotated = append(annotated, &Viewpoint{Path: v.Path, Meta: v.Meta, Exp: exp})
	}

	groups := group(annotated)
	d := &Decision{ValidUserOverride: true, Groups: groups}

	switch {
	case len(groups) == 0:
		d.NbBrackets = 0
	case len(groups) == 1:
		if identical(groups[0]) {
			// One exposure level shot from many viewpoints.
			d.NbBrackets = 1
		} else {
			// One viewpoint shot at many exposure levels.
			d.NbBrackets = len(groups[0])
		}
	default:
		d.NbBrackets = selectSize(histogram(groups))
	}

	klog.Infof("detected %d bracket(s) across %d group(s) from %d image(s)", d.NbBrackets, len(groups), len(views))
	return d
}
