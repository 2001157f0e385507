package bracket

import (
	"encoding/json"
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

// Report is the JSON shape written for a detection run.
type Report struct {
	NbBrackets        int        `json:"nbBrackets"`
	ValidUserOverride bool       `json:"validUserOverride"`
	GroupSizes        []int      `json:"groupSizes,omitempty"`
	Groups            [][]string `json:"groups,omitempty"`
}

// NewReport flattens a decision into its serializable form.
func NewReport(d *Decision) *Report {
	r := &Report{NbBrackets: d.NbBrackets, ValidUserOverride: d.ValidUserOverride}

	for _, g := range d.Groups {
		paths := make([]string, 0, len(g))
		for _, v := range g {
			paths = append(paths, v.Path)
		}
		r.GroupSizes = append(r.GroupSizes, len(g))
		r.Groups = append(r.Groups, paths)
	}

	return r
}

// WriteReport writes the decision to path as indented JSON.
func WriteReport(path string, d *Decision) error {
	bs, err := json.MarshalIndent(NewReport(d), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	klog.Infof("writing report to %s", path)
	return os.WriteFile(path, bs, 0o600)
}

// viewpointJSON mirrors the upstream per-image input: a path plus a
// metadata blob. The blob may be a JSON object or a string holding
// JSON, which is how node graphs tend to ship it.
type viewpointJSON struct {
	Path     string          `json:"path"`
	Metadata json.RawMessage `json:"metadata"`
}

// LoadViewpoints reads a JSON array of {path, metadata} objects, for
// callers that already hold per-image metadata blobs.
func LoadViewpoints(path string) ([]*Viewpoint, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []viewpointJSON
	if err := json.Unmarshal(bs, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}

	views := make([]*Viewpoint, 0, len(raw))
	for _, r := range raw {
		v := &Viewpoint{Path: r.Path}
		if len(r.Metadata) > 0 {
			if err := unmarshalRecord(r.Metadata, &v.Meta); err != nil {
				return nil, fmt.Errorf("metadata for %s: %w", r.Path, err)
			}
		}
		views = append(views, v)
	}

	return views, nil
}

func unmarshalRecord(bs []byte, rec *Record) error {
	err := json.Unmarshal(bs, rec)
	if err == nil {
		return nil
	}

	var s string
	if err2 := json.Unmarshal(bs, &s); err2 == nil {
		if s == "" {
			return nil
		}
		return json.Unmarshal([]byte(s), rec)
	}

	return err
}
