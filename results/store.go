package results

import (
	"github.com/kingrea/stagehand/internal/deepmerge"
	"github.com/kingrea/stagehand/logbook"
)

// DocumentRoot is the fixed namespace label wrapping all rendered stage
// data. Every writer uses the same label so documents produced by
// different codecs stay comparable.
const DocumentRoot = "stagehand-results"

// Store is the ordered collection of stage results for a pipeline run.
// It holds at most one entry per (stage, sub-stage) identity; reruns are
// reconciled by Upsert's deep merge. A Store is not safe for concurrent
// use: the intended access pattern is one synchronous writer per process
// invocation.
type Store struct {
	entries []StageResult
	book    *logbook.Logbook
}

// Option customizes a Store during construction.
type Option func(*Store)

// WithLogbook attaches a logbook that records store activity (upserts,
// merges, snapshot traffic). Logbook failures never fail store operations.
func WithLogbook(book *logbook.Logbook) Option {
	return func(s *Store) {
		s.book = book
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of distinct stage entries held.
func (s *Store) Len() int {
	return len(s.entries)
}

// Results returns a copy of the stored entries in store order. Mutating
// the copy does not affect the store.
func (s *Store) Results() []StageResult {
	out := make([]StageResult, len(s.entries))
	copy(out, s.entries)
	return out
}

// Upsert records a stage result. A result with a new identity is appended.
// A rerun (same stage and sub-stage as an existing entry) deep-merges the
// artifact sets with the new run winning on conflicting values, removes
// the prior entry, and appends the merged result at the end of the order.
// The move-to-end on rerun is part of the contract: reports render the
// most recently touched entries last.
func (s *Store) Upsert(result StageResult) error {
	if err := result.Validate(); err != nil {
		return err
	}
	merged := false
	if idx := s.indexOf(result.StageName, result.SubStageName); idx >= 0 {
		result.Artifacts = mergeArtifacts(result.Artifacts, s.entries[idx].Artifacts)
		s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
		merged = true
	}
	s.entries = append(s.entries, result)
	if merged {
		s.book.Info("merged rerun of stage %s/%s (%d artifacts)",
			result.StageName, result.SubStageName, len(result.Artifacts))
	} else {
		s.book.Info("recorded stage %s/%s (%d artifacts)",
			result.StageName, result.SubStageName, len(result.Artifacts))
	}
	return nil
}

// ArtifactValue scans all entries in store order and returns the value of
// the named artifact from the first entry that has one.
func (s *Store) ArtifactValue(name string) (string, bool) {
	for _, e := range s.entries {
		if v, ok := e.ArtifactValue(name); ok {
			return v, true
		}
	}
	return "", false
}

// ArtifactValueForStage returns the named artifact from the first entry of
// the given stage that has it. A miss is a miss: there is no fallback to
// other stages.
func (s *Store) ArtifactValueForStage(name, stageName string) (string, bool) {
	for _, e := range s.entries {
		if e.StageName != stageName {
			continue
		}
		if v, ok := e.ArtifactValue(name); ok {
			return v, true
		}
	}
	return "", false
}

// ArtifactValueForSubStage returns the named artifact from the unique
// entry with the exact (stage, sub-stage) identity. A miss is a miss.
func (s *Store) ArtifactValueForSubStage(name, stageName, subStageName string) (string, bool) {
	for _, e := range s.entries {
		if e.sameIdentity(stageName, subStageName) {
			return e.ArtifactValue(name)
		}
	}
	return "", false
}

// EntriesFor returns every entry of the given stage rendered into wire
// shape, keyed by sub-stage name.
func (s *Store) EntriesFor(stageName string) map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, e := range s.entries {
		if e.StageName == stageName {
			out[e.SubStageName] = e.Render()
		}
	}
	return out
}

// AllEntries folds the whole store into the rendered snapshot: stage name
// to sub-stage name to rendered entry, wrapped under DocumentRoot. Entries
// are merged in store order with the later-processed entry as the newer
// merge side, so any structural overlap resolves the same way a rerun does.
func (s *Store) AllEntries() map[string]any {
	folded := make(map[string]any)
	for _, e := range s.entries {
		single := map[string]any{
			e.StageName: map[string]any{
				e.SubStageName: e.Render(),
			},
		}
		folded = deepmerge.Merge(single, folded)
	}
	return map[string]any{DocumentRoot: folded}
}

func (s *Store) indexOf(stageName, subStageName string) int {
	for i, e := range s.entries {
		if e.sameIdentity(stageName, subStageName) {
			return i
		}
	}
	return -1
}

// mergeArtifacts reconciles a rerun's artifact set with the prior run's.
// The merge happens in rendered-mapping space so nested values follow the
// same rules as document folding. Order of the merged set: the newer run's
// artifacts in their insertion order, then artifacts only the prior run
// produced, in theirs.
func mergeArtifacts(newer, older []Artifact) []Artifact {
	merged := deepmerge.Merge(renderArtifacts(newer), renderArtifacts(older))

	order := make([]string, 0, len(merged))
	seen := make(map[string]struct{}, len(merged))
	for _, a := range newer {
		if _, dup := seen[a.Name]; !dup {
			order = append(order, a.Name)
			seen[a.Name] = struct{}{}
		}
	}
	for _, a := range older {
		if _, dup := seen[a.Name]; !dup {
			order = append(order, a.Name)
			seen[a.Name] = struct{}{}
		}
	}

	out := make([]Artifact, 0, len(order))
	for _, name := range order {
		fields, ok := merged[name].(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Artifact{
			Name:        name,
			Description: stringField(fields, "description"),
			Kind:        ArtifactKind(stringField(fields, "type")),
			Value:       stringField(fields, "value"),
		})
	}
	return out
}

func renderArtifacts(artifacts []Artifact) map[string]any {
	out := make(map[string]any, len(artifacts))
	for _, a := range artifacts {
		out[a.Name] = a.render()
	}
	return out
}

func stringField(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return v
}
