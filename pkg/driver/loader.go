package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// SourceFile is one program text and where it came from.
type SourceFile struct {
	Path string
	Text string
}

// StdinPath names standard input on the command line.
const StdinPath = "-"

// ReadSource loads the program at path, or reads stdin when path is "-".
func ReadSource(path string, stdin io.Reader) (*SourceFile, error) {
	if path == StdinPath {
		if stdin == nil {
			return nil, fmt.Errorf("loader: no standard input")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("loader: read stdin: %w", err)
		}
		return &SourceFile{Path: "<stdin>", Text: string(data)}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return &SourceFile{Path: path, Text: string(data)}, nil
}

// ResolveEntry picks the program to load: path when given, otherwise the entry
// of the nearest plc.yml above dir. The manifest is returned when one was
// found, even if path was explicit, so its settings still apply.
func ResolveEntry(path, dir string) (string, *Manifest, error) {
	manifest, err := nearestManifest(dir)
	if err != nil {
		return "", nil, err
	}
	if path != "" {
		return path, manifest, nil
	}
	if manifest == nil {
		return "", nil, fmt.Errorf("loader: no program given and no %s found", ManifestFileName)
	}
	return manifest.EntryPath(), manifest, nil
}

func nearestManifest(dir string) (*Manifest, error) {
	if dir == "" {
		return nil, nil
	}
	manifestPath, err := FindManifest(dir)
	if errors.Is(err, ErrManifestNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return LoadManifest(manifestPath)
}
