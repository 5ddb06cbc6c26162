package snapshot

import (
	"bytes"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/wippyai/glinspect/errors"
)

// Snapshot is a set of programs described as data.
type Snapshot struct {
	Programs []Program `toml:"program"`
}

// Program describes one linked program.
type Program struct {
	ID         uint32      `toml:"id"`
	Name       string      `toml:"name,omitempty"`
	Interfaces []Interface `toml:"interface,omitempty"`
}

// Interface describes the active resources of one program interface.
// Interfaces missing from a program have no active resources.
type Interface struct {
	// Name is the symbolic interface name, e.g. "UNIFORM".
	Name string `toml:"name"`
	// Reject lists parameters and properties the context refuses for this
	// interface; "*" refuses every query.
	Reject    []string   `toml:"reject,omitempty"`
	Resources []Resource `toml:"resource,omitempty"`
}

// Resource describes one active resource. Properties are keyed by symbolic
// name; NAME_LENGTH is derived from Name.
//
// Written, when set, caps how many values a property batch query writes,
// mimicking a driver that fills only part of the buffer.
type Resource struct {
	Name                  string           `toml:"name,omitempty"`
	Type                  string           `toml:"type,omitempty"`
	Properties            map[string]int32 `toml:"properties,omitempty,inline"`
	ActiveVariables       []int32          `toml:"active_variables,omitempty"`
	CompatibleSubroutines []int32          `toml:"compatible_subroutines,omitempty"`
	Written               *int             `toml:"written,omitempty"`
}

// Program returns the program with the given id.
func (s *Snapshot) Program(id uint32) (*Program, bool) {
	for i := range s.Programs {
		if s.Programs[i].ID == id {
			return &s.Programs[i], true
		}
	}
	return nil, false
}

// Decode reads a snapshot. Unknown keys are rejected.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Load("decode snapshot", err)
	}
	return &s, nil
}

// Encode writes a snapshot.
func Encode(w io.Writer, s *Snapshot) error {
	enc := toml.NewEncoder(w).SetIndentTables(true)
	if err := enc.Encode(s); err != nil {
		return errors.Load("encode snapshot", err)
	}
	return nil
}

// Load reads a snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Save writes a snapshot file.
func Save(path string, s *Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Load("write "+path, err)
	}
	return nil
}
