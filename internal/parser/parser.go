package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents the format of a check file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatYAML represents a YAML (.yaml, .yml) check file
	FormatYAML
	// FormatJSON represents a JSON (.json) check file
	FormatJSON
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

var extensions = []string{".yaml", ".yml", ".json"}

// DetectFormat detects the check file format from its extension
//   - .yaml, .yml -> FormatYAML
//   - .json -> FormatJSON
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// Parse decodes a check document. JSON documents are decoded by the YAML
// decoder; unknown fields are rejected in both formats.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty check document")
		}
		return nil, fmt.Errorf("failed to decode check document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseFile opens path, parses it and records its absolute path in the
// document.
func ParseFile(path string) (*Document, error) {
	if DetectFormat(path) == FormatUnknown {
		return nil, fmt.Errorf("unknown file format: %s (supported: .yaml, .yml, .json)", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	doc, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	doc.FilePath = absPath
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// ExpandPaths resolves files and directories into a sorted, deduplicated list
// of absolute check file paths. Directories are scanned recursively; hidden
// directories are skipped.
func ExpandPaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths provided")
	}

	found := make(map[string]bool)
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path %q does not exist", absPath)
			}
			return nil, fmt.Errorf("failed to access path %q: %w", absPath, err)
		}

		if !info.IsDir() {
			if DetectFormat(absPath) == FormatUnknown {
				return nil, fmt.Errorf("unknown file format: %s (supported: %s)", absPath, strings.Join(extensions, ", "))
			}
			found[absPath] = true
			continue
		}

		err = filepath.WalkDir(absPath, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != absPath && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if DetectFormat(p) != FormatUnknown {
				found[p] = true
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %q: %w", absPath, err)
		}
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("no check files found (supported: %s)", strings.Join(extensions, ", "))
	}

	result := make([]string, 0, len(found))
	for p := range found {
		result = append(result, p)
	}
	slices.Sort(result)
	return result, nil
}
