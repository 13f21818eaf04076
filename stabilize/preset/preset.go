/*
NAME
  preset.go

DESCRIPTION
  Package preset implements a small on-disk store of named stabilization
  parameter presets, one JSON file per preset, validated on every load the
  same way revid/config.Config repairs bad or unset fields rather than
  failing outright.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package preset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"

	"github.com/ausocean/stabilize/stabilize"
)

// validNamePattern restricts preset names to a safe filesystem subset so a
// caller-supplied name can never escape the store directory.
var validNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Store is a directory of named, JSON-encoded parameter presets.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating dir (and any missing
// parents) if it does not already exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "preset: creating store directory %q", dir)
	}
	return &Store{dir: dir}, nil
}

// record is the on-disk representation of one preset: its name, its
// optional description, and the params as Validate returned them in Save.
// The caller's unvalidated params are not stored.
type record struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Params      stabilize.Params `json:"params"`
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save validates p and writes it to disk under name, overwriting any
// existing preset of the same name. description is an optional
// human-readable note carried alongside the preset; pass "" if none.
// It returns the clamps Validate applied, if any, alongside a non-nil
// error only for an invalid name or an I/O failure.
func (s *Store) Save(name string, p stabilize.Params, description string) ([]string, error) {
	if !validNamePattern.MatchString(name) {
		return nil, errors.Errorf("preset: invalid name %q", name)
	}

	validated, reports := stabilize.Validate(p)
	reasons := make([]string, len(reports))
	for i, r := range reports {
		reasons[i] = r.Field + ": " + r.Reason
	}

	rec := record{Name: name, Description: description, Params: validated}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return reasons, errors.Wrap(err, "preset: marshaling record")
	}

	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return reasons, errors.Wrapf(err, "preset: writing %q", tmp)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return reasons, errors.Wrapf(err, "preset: renaming %q into place", tmp)
	}
	return reasons, nil
}

// Load reads and re-validates the preset stored under name, returning its
// params alongside its optional description. Re-validation means a
// preset saved under an older, looser parameter contract is repaired on
// load rather than rejected.
func (s *Store) Load(name string) (stabilize.Params, string, error) {
	if !validNamePattern.MatchString(name) {
		return stabilize.Params{}, "", errors.Errorf("preset: invalid name %q", name)
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return stabilize.Params{}, "", errors.Wrapf(err, "preset: reading %q", name)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return stabilize.Params{}, "", errors.Wrapf(err, "preset: unmarshaling %q", name)
	}

	validated, _ := stabilize.Validate(rec.Params)
	return validated, rec.Description, nil
}

// Delete removes the preset stored under name. It is not an error to
// delete a preset that does not exist.
func (s *Store) Delete(name string) error {
	if !validNamePattern.MatchString(name) {
		return errors.Errorf("preset: invalid name %q", name)
	}
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "preset: removing %q", name)
	}
	return nil
}

// List returns the names of all presets currently in the store, in
// filesystem order (not guaranteed to be sorted or stable).
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "preset: reading store directory %q", s.dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".json" {
			continue
		}
		names = append(names, e.Name()[:len(e.Name())-len(ext)])
	}
	return names, nil
}
