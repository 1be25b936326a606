package results

import (
	"strings"
	"testing"
)

func TestAddArtifactReplacesSameNameInPlace(t *testing.T) {
	r := NewStageResult("build", "", "builder")
	r.AddArtifact(Artifact{Name: "image", Value: "app:1"})
	r.AddArtifact(Artifact{Name: "digest", Value: "sha256:aa"})
	r.AddArtifact(Artifact{Name: "image", Value: "app:2"})
	if len(r.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(r.Artifacts))
	}
	if r.Artifacts[0].Name != "image" || r.Artifacts[0].Value != "app:2" {
		t.Fatalf("artifacts[0] = %+v, want replaced image at original position", r.Artifacts[0])
	}
}

func TestAddArtifactDefaultsToStringKind(t *testing.T) {
	r := NewStageResult("build", "", "builder")
	r.AddArtifact(Artifact{Name: "version", Value: "v1.0.2"})
	a, ok := r.Artifact("version")
	if !ok {
		t.Fatal("missing version artifact")
	}
	if a.Kind != KindString {
		t.Fatalf("kind = %q, want %q", a.Kind, KindString)
	}
}

func TestRenderUsesWireKeys(t *testing.T) {
	r := NewStageResult("deploy", "k8s", "argocd")
	r.Succeeded = false
	r.Message = "sync failed"
	r.AddArtifact(Artifact{Name: "manifest", Kind: KindFile, Value: "deploy.yml"})
	entry := r.Render()
	if entry["implementer-name"] != "argocd" {
		t.Fatalf("implementer-name = %v", entry["implementer-name"])
	}
	if entry["sub-step-name"] != "k8s" {
		t.Fatalf("sub-step-name = %v", entry["sub-step-name"])
	}
	if entry["success"] != false || entry["message"] != "sync failed" {
		t.Fatalf("entry = %v", entry)
	}
	artifacts := entry["artifacts"].(map[string]any)
	manifest := artifacts["manifest"].(map[string]any)
	if manifest["type"] != "file" {
		t.Fatalf("type = %v, want file", manifest["type"])
	}
}

func TestValidateRejectsMalformedResults(t *testing.T) {
	cases := []struct {
		name   string
		result StageResult
		want   string
	}{
		{
			name:   "missing stage name",
			result: StageResult{ImplementerName: "impl"},
			want:   "stage name",
		},
		{
			name:   "missing implementer",
			result: StageResult{StageName: "build"},
			want:   "implementer name",
		},
		{
			name: "unnamed artifact",
			result: StageResult{
				StageName:       "build",
				ImplementerName: "impl",
				Artifacts:       []Artifact{{Value: "x", Kind: KindString}},
			},
			want: "without a name",
		},
		{
			name: "duplicate artifact",
			result: StageResult{
				StageName:       "build",
				ImplementerName: "impl",
				Artifacts: []Artifact{
					{Name: "a", Kind: KindString},
					{Name: "a", Kind: KindString},
				},
			},
			want: "duplicate artifact",
		},
		{
			name: "unknown kind",
			result: StageResult{
				StageName:       "build",
				ImplementerName: "impl",
				Artifacts:       []Artifact{{Name: "a", Kind: "blob"}},
			},
			want: "unknown kind",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.result.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %q, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateAcceptsWellFormedResult(t *testing.T) {
	r := NewStageResult("build", "maven", "maven-builder")
	r.AddArtifact(Artifact{Name: "jar", Kind: KindFile, Value: "app.jar"})
	if err := r.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
