package results

import (
	"fmt"
	"strings"
)

// StageResult is the complete outcome of one stage (or sub-stage)
// execution. Identity is the (StageName, SubStageName) pair; an empty
// SubStageName is a valid identity component, not a wildcard. Once handed
// to a Store the result is owned by the store and must not be mutated by
// the caller.
type StageResult struct {
	StageName       string     `msgpack:"stage_name"`
	SubStageName    string     `msgpack:"sub_stage_name"`
	ImplementerName string     `msgpack:"implementer_name"`
	Succeeded       bool       `msgpack:"succeeded"`
	Message         string     `msgpack:"message"`
	Artifacts       []Artifact `msgpack:"artifacts"`
}

// NewStageResult builds an empty, successful result for the given identity.
func NewStageResult(stageName, subStageName, implementerName string) StageResult {
	return StageResult{
		StageName:       stageName,
		SubStageName:    subStageName,
		ImplementerName: implementerName,
		Succeeded:       true,
	}
}

// AddArtifact records an artifact on the result. An artifact with the same
// name replaces the previous one in place; new names append, preserving
// insertion order. An empty Kind defaults to KindString.
func (r *StageResult) AddArtifact(a Artifact) {
	if a.Kind == "" {
		a.Kind = KindString
	}
	for i, existing := range r.Artifacts {
		if existing.Name == a.Name {
			r.Artifacts[i] = a
			return
		}
	}
	r.Artifacts = append(r.Artifacts, a)
}

// Artifact returns the named artifact, reporting whether it exists.
func (r StageResult) Artifact(name string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// ArtifactValue returns the value of the named artifact, reporting whether
// it exists.
func (r StageResult) ArtifactValue(name string) (string, bool) {
	a, ok := r.Artifact(name)
	if !ok {
		return "", false
	}
	return a.Value, true
}

// sameIdentity reports whether two results describe the same stage entry.
func (r StageResult) sameIdentity(stageName, subStageName string) bool {
	return r.StageName == stageName && r.SubStageName == subStageName
}

// Validate checks the result is well-formed enough to enter a store.
func (r StageResult) Validate() error {
	if strings.TrimSpace(r.StageName) == "" {
		return fmt.Errorf("results: stage name is required")
	}
	if strings.TrimSpace(r.ImplementerName) == "" {
		return fmt.Errorf("results: implementer name is required for stage %s", r.StageName)
	}
	seen := make(map[string]struct{}, len(r.Artifacts))
	for _, a := range r.Artifacts {
		if a.Name == "" {
			return fmt.Errorf("results: stage %s has an artifact without a name", r.StageName)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("results: stage %s has duplicate artifact %s", r.StageName, a.Name)
		}
		seen[a.Name] = struct{}{}
		switch a.Kind {
		case KindString, KindFile:
		default:
			return fmt.Errorf("results: artifact %s has unknown kind %q", a.Name, a.Kind)
		}
	}
	return nil
}

// Render folds the result into the external wire shape: implementer name,
// sub-step name, success flag, message, and the artifact mapping keyed by
// artifact name.
func (r StageResult) Render() map[string]any {
	artifacts := make(map[string]any, len(r.Artifacts))
	for _, a := range r.Artifacts {
		artifacts[a.Name] = a.render()
	}
	return map[string]any{
		"implementer-name": r.ImplementerName,
		"sub-step-name":    r.SubStageName,
		"success":          r.Succeeded,
		"message":          r.Message,
		"artifacts":        artifacts,
	}
}
