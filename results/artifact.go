package results

// ArtifactKind tags how downstream consumers should treat an artifact value.
// It is advisory metadata only and has no effect on merge or storage logic.
type ArtifactKind string

const (
	// KindString marks a plain string value.
	KindString ArtifactKind = "str"
	// KindFile marks a value that is a path to a file (e.g. something a
	// CI system should archive).
	KindFile ArtifactKind = "file"
)

// Artifact is a single named output value produced by a stage. Artifacts
// are immutable once created and are identified by Name within the owning
// StageResult's artifact set.
type Artifact struct {
	Name        string       `msgpack:"name"`
	Description string       `msgpack:"description"`
	Kind        ArtifactKind `msgpack:"kind"`
	Value       string       `msgpack:"value"`
}

// render produces the wire-shape mapping for one artifact.
func (a Artifact) render() map[string]any {
	return map[string]any{
		"description": a.Description,
		"type":        string(a.Kind),
		"value":       a.Value,
	}
}
