package bracket

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"
)

// SheetOpts are contact sheet options.
type SheetOpts struct {
	RowHeight int
	Quality   int
}

var defaultSheetOpts = SheetOpts{RowHeight: 180, Quality: 85}

// WriteSheets renders one contact sheet per multi-image group: members
// resized to a common row height and composed left to right, so a
// glance shows whether the detected bracket looks like one scene.
// Members that fail to decode are skipped with a warning.
func WriteSheets(groups []Group, outDir string) error {
	return writeSheets(groups, outDir, defaultSheetOpts)
}

func writeSheets(groups []Group, outDir string, o SheetOpts) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	for n, g := range groups {
		if len(g) < 2 {
			continue
		}

		thumbs := []image.Image{}
		width := 0

		for _, v := range g {
			img, err := imgio.Open(v.Path)
			if err != nil {
				klog.Warningf("unable to open %s: %v", v.Path, err)
				continue
			}
			if img.Bounds().Dy() == 0 {
				klog.Warningf("no Y for %s", v.Path)
				continue
			}

			scale := float64(img.Bounds().Dy()) / float64(o.RowHeight)
			x := int(float64(img.Bounds().Dx()) / scale)
			t := transform.Resize(img, x, o.RowHeight, transform.Lanczos)
			thumbs = append(thumbs, t)
			width += t.Bounds().Dx()
		}

		if len(thumbs) == 0 {
			continue
		}

		sheet := image.NewRGBA(image.Rect(0, 0, width, o.RowHeight))
		off := 0
		for _, t := range thumbs {
			r := image.Rect(off, 0, off+t.Bounds().Dx(), o.RowHeight)
			draw.Draw(sheet, r, t, t.Bounds().Min, draw.Src)
			off += t.Bounds().Dx()
		}

		p := filepath.Join(outDir, fmt.Sprintf("bracket_%03d.jpg", n+1))
		klog.Infof("writing %d-up contact sheet to %s", len(thumbs), p)
		if err := imgio.Save(p, sheet, imgio.JPEGEncoder(o.Quality)); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}

	return nil
}
