// Package layout defines the well-known on-disk tree shared by every
// pipeline stage invocation. All persisted state lives under a single
// results directory inside the pipeline's working directory, so the files
// are easy to archive as CI artifacts and to track in version control.
//
//	pipeline-results/
//	├── pipeline-results.msgpack   <- binary snapshot reloaded by each stage
//	├── pipeline-results.yml       <- YAML tree view for reporting
//	├── pipeline-results.json      <- JSON record view for reporting
//	└── pipeline-results.log       <- store activity logbook
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResultsDir is the directory created inside the working directory.
const ResultsDir = "pipeline-results"

// File names inside ResultsDir, one per persistence format.
const (
	FileSnapshot = "pipeline-results.msgpack"
	FileYAML     = "pipeline-results.yml"
	FileJSON     = "pipeline-results.json"
	FileLogbook  = "pipeline-results.log"
)

// Layout resolves result paths for one pipeline working directory.
type Layout struct {
	// WorkDir is the directory the pipeline runs in. Empty means the
	// current directory.
	WorkDir string
}

// New returns a layout rooted at workDir.
func New(workDir string) Layout {
	return Layout{WorkDir: workDir}
}

// Dir returns the results directory.
func (l Layout) Dir() string {
	return filepath.Join(l.WorkDir, ResultsDir)
}

// SnapshotPath returns the binary snapshot path.
func (l Layout) SnapshotPath() string {
	return filepath.Join(l.Dir(), FileSnapshot)
}

// YAMLPath returns the YAML tree document path.
func (l Layout) YAMLPath() string {
	return filepath.Join(l.Dir(), FileYAML)
}

// JSONPath returns the JSON record document path.
func (l Layout) JSONPath() string {
	return filepath.Join(l.Dir(), FileJSON)
}

// LogbookPath returns the store activity log path.
func (l Layout) LogbookPath() string {
	return filepath.Join(l.Dir(), FileLogbook)
}

// Init materializes the results directory. The individual writers also
// create it on demand; Init exists so orchestration can fail fast on an
// unwritable working directory before running any stage.
func (l Layout) Init() error {
	if err := os.MkdirAll(l.Dir(), 0o755); err != nil {
		return fmt.Errorf("layout: create %s: %w", l.Dir(), err)
	}
	return nil
}
