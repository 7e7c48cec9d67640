package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// LoadReport describes what Load found and repaired.
type LoadReport struct {
	Created bool     // The file did not exist and was created from defaults
	Corrupt error    // Non-nil when the file could not be read or parsed
	Missing []string // Keys absent from the file, filled from defaults
	Invalid []string // Keys with rejected values, replaced by defaults
	Unknown []string // Keys in the file that are not recognized (ignored)
	Saved   bool     // The file was rewritten
	SaveErr error    // Non-nil when a required rewrite failed
}

// Repaired reports whether the on-disk file needed rewriting.
func (r LoadReport) Repaired() bool {
	return r.Created || r.Corrupt != nil || len(r.Missing) > 0 || len(r.Invalid) > 0
}

// rawFile is the parsed file before per-key validation.
type rawFile map[string]map[string]yaml.Node

// decode parses data onto a copy of defaults. Keys that are missing or
// invalid keep their default value and are listed in the report.
// A non-nil error means the document itself could not be parsed.
func decode(data []byte, defaults Record) (Record, LoadReport, error) {
	rec := defaults.Clone()
	var report LoadReport

	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		// A type mismatch still decodes the well-formed sections.
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			return rec, report, fmt.Errorf("settings: cannot parse file: %w", err)
		}
		report.Corrupt = fmt.Errorf("settings: malformed sections: %w", err)
	}

	for _, f := range fields {
		node, ok := raw[f.section][f.name]
		if !ok {
			report.Missing = append(report.Missing, f.Key())
			continue
		}
		if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
			report.Invalid = append(report.Invalid, f.Key())
			continue
		}
		if err := f.set(&rec, node.Value); err != nil {
			report.Invalid = append(report.Invalid, f.Key())
		}
	}

	for section, entries := range raw {
		for name := range entries {
			key := section + "." + name
			if _, ok := fieldIndex[key]; !ok {
				report.Unknown = append(report.Unknown, key)
			}
		}
	}
	sort.Strings(report.Unknown)

	return rec, report, nil
}

// encode renders r as a YAML document with sections and keys in file order.
func encode(r Record) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	sections := make(map[string]*yaml.Node, len(Sections))
	for _, name := range Sections {
		section := &yaml.Node{Kind: yaml.MappingNode}
		sections[name] = section
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			section,
		)
	}

	for _, f := range fields {
		value := &yaml.Node{}
		if err := value.Encode(f.get(r)); err != nil {
			return nil, fmt.Errorf("settings: cannot encode %s: %w", f.Key(), err)
		}
		section := sections[f.section]
		section.Content = append(section.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.name},
			value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("settings: cannot encode file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("settings: cannot encode file: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFile atomically replaces path with data, creating parent
// directories as needed. The data is synced before the rename.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: cannot create directory %s: %w", dir, err)
	}
	if err := renameio.WriteFile(path, data, 0o644, renameio.WithExistingPermissions()); err != nil {
		return fmt.Errorf("settings: cannot write %s: %w", path, err)
	}
	return nil
}
