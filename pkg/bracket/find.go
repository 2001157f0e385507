package bracket

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/barasher/go-exiftool"
	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// photoExts are the file extensions considered for detection.
var photoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
	".dng":  true,
	".arw":  true,
	".cr2":  true,
	".nef":  true,
	".raf":  true,
	".tif":  true,
	".tiff": true,
}

// Find walks root and returns a viewpoint for every photo found, each
// carrying its raw exiftool field map. A failed extraction leaves the
// viewpoint without metadata rather than aborting the walk.
func Find(root string) ([]*Viewpoint, error) {
	found := []*Viewpoint{}

	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	defer et.Close()

	err = godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && filepath.Base(path)[0] == '.' {
				return godirwalk.SkipThis
			}

			if de.IsDir() || !photoExts[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			klog.V(1).Infof("found %s", path)
			fi := et.ExtractMetadata(path)[0]
			if fi.Err != nil {
				klog.Warningf("extract fail for %q: %v", path, fi.Err)
				found = append(found, &Viewpoint{Path: path})
				return nil
			}

			for k, v := range fi.Fields {
				klog.V(2).Infof("%q=%v", k, v)
			}

			found = append(found, &Viewpoint{Path: path, Meta: Record(fi.Fields)})
			return nil
		},
	})

	return found, err
}
