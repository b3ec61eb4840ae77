package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project file looked up by FindManifest.
const ManifestFileName = "plc.yml"

// ErrManifestNotFound is returned by FindManifest when no directory up to the
// filesystem root holds a manifest.
var ErrManifestNotFound = errors.New("manifest: " + ManifestFileName + " not found")

// LogLevel selects how much the driver logs.
type LogLevel string

const (
	LogLevelOff   LogLevel = "off"
	LogLevelError LogLevel = "error"
	LogLevelInfo  LogLevel = "info"
)

// Manifest represents the parsed contents of plc.yml.
type Manifest struct {
	Path         string
	Name         string
	Entry        string
	DecimalScale int32
	MaxCallDepth int
	LogLevel     LogLevel
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type manifestFile struct {
	Name         string `yaml:"name"`
	Entry        string `yaml:"entry"`
	DecimalScale *int   `yaml:"decimal_scale"`
	MaxCallDepth *int   `yaml:"max_call_depth"`
	LogLevel     string `yaml:"log_level"`
}

// LoadManifest parses plc.yml from disk, returning a validated manifest.
// Unknown keys are rejected.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}
	return raw.toManifest(absPath)
}

func (mf manifestFile) toManifest(path string) (*Manifest, error) {
	var errs ValidationError
	m := &Manifest{
		Path:         path,
		Name:         strings.TrimSpace(mf.Name),
		Entry:        strings.TrimSpace(mf.Entry),
		DecimalScale: 16,
		MaxCallDepth: 10000,
		LogLevel:     LogLevelOff,
	}
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry == "" {
		errs.Issues = append(errs.Issues, "entry must be provided")
	} else if filepath.IsAbs(m.Entry) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must be relative to the manifest", m.Entry))
	}
	if mf.DecimalScale != nil {
		if *mf.DecimalScale < 1 || *mf.DecimalScale > 1000 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("decimal_scale %d must be between 1 and 1000", *mf.DecimalScale))
		} else {
			m.DecimalScale = int32(*mf.DecimalScale)
		}
	}
	if mf.MaxCallDepth != nil {
		if *mf.MaxCallDepth <= 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth %d must be positive", *mf.MaxCallDepth))
		} else {
			m.MaxCallDepth = *mf.MaxCallDepth
		}
	}
	switch level := LogLevel(strings.ToLower(strings.TrimSpace(mf.LogLevel))); level {
	case "":
	case LogLevelOff, LogLevelError, LogLevelInfo:
		m.LogLevel = level
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q must be one of off, error, info", mf.LogLevel))
	}
	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return m, nil
}

// EntryPath resolves the entry program relative to the manifest directory.
func (m *Manifest) EntryPath() string {
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(m.Entry))
}

// FindManifest walks from start towards the filesystem root and returns the
// path of the first plc.yml found.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}
