package bracket

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

// Organize copies each detected group into its own bracket_NNN
// directory under outDir, preserving base names. Copies are skipped
// when the destination already matches the source size and is at
// least as new.
func Organize(groups []Group, outDir string) error {
	for n, g := range groups {
		dir := filepath.Join(outDir, fmt.Sprintf("bracket_%03d", n+1))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}

		klog.Infof("organizing %d image(s) into %s", len(g), dir)

		for _, v := range g {
			dest := filepath.Join(dir, filepath.Base(v.Path))
			if fresh(v.Path, dest) {
				klog.V(1).Infof("%s is up to date", dest)
				continue
			}
			if err := copy.Copy(v.Path, dest); err != nil {
				return fmt.Errorf("copy %s: %w", v.Path, err)
			}
		}
	}

	return nil
}

// fresh reports whether dest already matches src.
func fresh(src string, dest string) bool {
	sst, err := os.Stat(src)
	if err != nil {
		return false
	}

	dst, err := os.Stat(dest)
	if err != nil {
		return false
	}

	return sst.Size() == dst.Size() && !sst.ModTime().After(dst.ModTime())
}
