package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimLeft(contents, "\n")), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestFileName)
	writeFile(t, path, `
name: hello
entry: src/main.plc
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "hello" || manifest.Entry != "src/main.plc" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	if manifest.DecimalScale != 16 || manifest.MaxCallDepth != 10000 || manifest.LogLevel != LogLevelOff {
		t.Fatalf("unexpected defaults %+v", manifest)
	}
	if got, want := manifest.EntryPath(), filepath.Join(root, "src", "main.plc"); got != want {
		t.Fatalf("EntryPath = %s, want %s", got, want)
	}
}

func TestLoadManifestSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, `
name: tuned
entry: main.plc
decimal_scale: 4
max_call_depth: 200
log_level: Info
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.DecimalScale != 4 || manifest.MaxCallDepth != 200 || manifest.LogLevel != LogLevelInfo {
		t.Fatalf("unexpected settings %+v", manifest)
	}
	var p Pipeline
	p.Configure(manifest)
	if p.Scale != 4 || p.MaxDepth != 200 {
		t.Fatalf("Configure did not copy settings: %+v", p)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, `
name: ""
entry: /abs/main.plc
decimal_scale: 0
max_call_depth: -1
log_level: loud
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 5 {
		t.Fatalf("expected 5 issues, got %v", verr.Issues)
	}
	if !strings.HasPrefix(err.Error(), "manifest validation failed:\n- name must be provided") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, `
name: hello
entry: main.plc
targets: {}
`)
	_, err := LoadManifest(path)
	if err == nil || !strings.Contains(err.Error(), "targets") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadManifestEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, "")
	_, err := LoadManifest(path)
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestFileName)
	writeFile(t, path, "name: app\nentry: main.plc\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != path {
		t.Fatalf("FindManifest = %s, want %s", found, path)
	}
}

func TestResolveEntry(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestFileName), "name: app\nentry: src/main.plc\nmax_call_depth: 50\n")

	path, manifest, err := ResolveEntry("", root)
	if err != nil {
		t.Fatalf("ResolveEntry: %v", err)
	}
	if path != filepath.Join(root, "src", "main.plc") || manifest == nil || manifest.MaxCallDepth != 50 {
		t.Fatalf("unexpected resolution %s %+v", path, manifest)
	}

	path, manifest, err = ResolveEntry("other.plc", root)
	if err != nil || path != "other.plc" || manifest == nil {
		t.Fatalf("explicit path should win and keep the manifest: %s %+v %v", path, manifest, err)
	}
}

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.plc")
	writeFile(t, path, "FUN main(): Integer DO RETURN 0; END\n")
	file, err := ReadSource(path, nil)
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if file.Path != path || !strings.HasPrefix(file.Text, "FUN main") {
		t.Fatalf("unexpected file %+v", file)
	}

	file, err = ReadSource(StdinPath, strings.NewReader("text"))
	if err != nil || file.Path != "<stdin>" || file.Text != "text" {
		t.Fatalf("unexpected stdin read %+v (%v)", file, err)
	}

	if _, err := ReadSource(filepath.Join(t.TempDir(), "missing.plc"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
