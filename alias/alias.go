// Package alias resolves user-defined system labels to canonical names.
//
// Aliases live in a JSON object of alias -> canonical name and are invoked
// with the "JP:" prefix, e.g. "JP:Home". Alias keys match case-sensitively;
// the prefix itself is recognized in any case. The mapping is loaded once
// and immutable afterwards.
package alias

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prefix marks a label as an alias lookup.
const Prefix = "JP:"

// ErrUnknownAlias indicates a prefixed label with no alias entry.
type ErrUnknownAlias struct {
	Label string
}

func (e *ErrUnknownAlias) Error() string {
	return fmt.Sprintf("unknown alias: %q", e.Label)
}

// Resolver maps user-chosen labels to canonical system names.
type Resolver struct {
	aliases map[string]string
}

// New creates a Resolver from an already parsed mapping. The map is copied.
func New(aliases map[string]string) *Resolver {
	m := make(map[string]string, len(aliases))
	for k, v := range aliases {
		m[k] = v
	}
	return &Resolver{aliases: m}
}

// Load parses a JSON object of alias -> canonical name from r.
func Load(r io.Reader) (*Resolver, error) {
	var m map[string]string
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}
	return &Resolver{aliases: m}, nil
}

// LoadFile parses the alias file at path.
func LoadFile(path string) (*Resolver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Len returns the number of alias entries.
func (r *Resolver) Len() int { return len(r.aliases) }

// Resolve maps a label to a canonical system name. The prefix is detected
// case-insensitively, but the alias key itself must match exactly: "jp:home"
// is an alias attempt and fails unless "home" is an entry. Labels without
// the prefix pass through unchanged and are validated against the dataset by
// the caller.
func (r *Resolver) Resolve(label string) (string, error) {
	if len(label) < len(Prefix) || !strings.EqualFold(label[:len(Prefix)], Prefix) {
		return label, nil
	}

	target, ok := r.aliases[label[len(Prefix):]]
	if !ok {
		return "", &ErrUnknownAlias{Label: label}
	}
	return target, nil
}

// DefaultAliases returns the mapping written to a fresh alias file.
func DefaultAliases() map[string]string {
	return map[string]string{
		"Sol":     "Jackson's Lighthouse",
		"Colonia": "Magellan",
	}
}

// WriteDefault creates the alias file at path with the default mapping if it
// does not exist yet. Returns true if the file was created.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	data, err := json.MarshalIndent(DefaultAliases(), "", "  ")
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write default alias file: %w", err)
	}
	return true, nil
}
