// Package bracket detects how many bracketed exposures make up each
// multi-exposure (LDR to HDR) capture in a set of photographs, using
// only per-image exposure metadata.
package bracket

// Config holds configuration for a detection run.
type Config struct {
	InDir        string
	SfMPath      string
	UserBrackets int
	ReportPath   string
	OrganizeDir  string
	SheetDir     string
}

// Record is a raw per-image metadata record: field names in whatever
// spelling the extractor produced, mapped to scalar values.
type Record map[string]interface{}

// Viewpoint is one input image: its path, its raw metadata record,
// and the exposure triple derived from it.
type Viewpoint struct {
	Path string
	Meta Record
	Exp  Exposure
}

// Group is one detected exposure bracket: a run of viewpoints from a
// single directory with non-decreasing exposure values.
type Group []*Viewpoint

// Decision is the outcome of a detection run.
type Decision struct {
	// NbBrackets is the number of exposures per bracket: 0 when it
	// could not be determined, 1 when the images are not bracketed.
	NbBrackets int

	// ValidUserOverride is false only when a user-forced bracket count
	// does not evenly divide the number of input images.
	ValidUserOverride bool

	// Groups is the detected partition. Empty when the user forced a
	// count or when detection bailed out on degenerate metadata.
	Groups []Group
}
