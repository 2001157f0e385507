package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"slices"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	"k8s.io/klog/v2"

	"github.com/fsnotify/fsnotify"
	bracket "github.com/tstromberg/bracket/pkg/bracket"
)

var (
	inDir        = flag.String("in", "", "Location of input directory to scan for images")
	sfmPath      = flag.String("sfm", "", "JSON viewpoint list to use instead of scanning a directory")
	userBrackets = flag.Int("brackets", 0, "Forced number of exposure brackets (0 for automatic detection)")
	jsonPath     = flag.String("json", "", "write the detection report to this path")
	organizeDir  = flag.String("organize", "", "copy detected groups into this directory")
	sheetDir     = flag.String("sheets", "", "write per-group contact sheets to this directory")
	watchFlag    = flag.Bool("watch", false, "watch for changes to inDir and re-detect")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *inDir == "" && *sfmPath == "" {
		klog.Exitf("--in or --sfm is a required flag")
	}

	c := &bracket.Config{
		InDir:        *inDir,
		SfMPath:      *sfmPath,
		UserBrackets: *userBrackets,
		ReportPath:   *jsonPath,
		OrganizeDir:  *organizeDir,
		SheetDir:     *sheetDir,
	}

	if err := run(c); err != nil {
		klog.Exitf("detect failed: %v", err)
	}

	if *watchFlag {
		if *inDir == "" {
			klog.Exitf("--watch requires --in")
		}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := watch(c); err != nil {
				klog.Exitf("watch failed: %v", err)
			}
		}()
		wg.Wait()
	}
}

// run performs one full detection pass.
func run(c *bracket.Config) error {
	var views []*bracket.Viewpoint
	var err error

	if c.SfMPath != "" {
		views, err = bracket.LoadViewpoints(c.SfMPath)
	} else {
		views, err = bracket.Find(c.InDir)
	}
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}

	d := bracket.Detect(views, c.UserBrackets)
	klog.Infof("nbBrackets=%d validUserOverride=%v", d.NbBrackets, d.ValidUserOverride)

	if c.ReportPath != "" {
		if err := bracket.WriteReport(c.ReportPath, d); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if c.OrganizeDir != "" {
		if err := bracket.Organize(d.Groups, c.OrganizeDir); err != nil {
			return fmt.Errorf("organize: %w", err)
		}
	}

	if c.SheetDir != "" {
		if err := bracket.WriteSheets(d.Groups, c.SheetDir); err != nil {
			return fmt.Errorf("sheets: %w", err)
		}
	}

	return nil
}

// watch watches the input tree for changes and re-detects
func watch(c *bracket.Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	// Start listening for events.
	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				log.Println("event:", event)
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					if err := run(c); err != nil {
						klog.Exitf("detect failed: %v", err)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Println("error:", err)
			}
		}
	}()

	dirs := []string{c.InDir}
	err = filepath.WalkDir(c.InDir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk: %w", err)
	}

	slices.Sort(dirs)
	dirs = slices.Compact(dirs)

	klog.Infof("watching %d dirs ...", len(dirs))
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			log.Fatal(err)
		}
	}

	<-make(chan struct{})
	return nil
}
