// Package catalog defines the college record model shared by the chat
// resolver and the harvester, the merge rules that deduplicate records
// across sources, and the JSON persistence for catalogs and the static
// knowledge base.
package catalog

import (
	"encoding/json"
	"fmt"
)

// College is one harvested college record. Every field except Name is
// free text straight from a source; Name is the deduplication key and is
// compared byte-for-byte (near-duplicate names from different sources do
// not merge).
type College struct {
	Name             string     `json:"name"`
	Location         string     `json:"location,omitempty"`
	Type             string     `json:"type,omitempty"`
	Established      string     `json:"established,omitempty"`
	Rating           string     `json:"rating,omitempty"`
	Fees             string     `json:"fees,omitempty"`
	Courses          StringList `json:"courses,omitzero"`
	AdmissionProcess string     `json:"admission_process,omitempty"`
	ApprovedBy       StringList `json:"approved_by,omitzero"`
	Address          string     `json:"address,omitempty"`
	Website          string     `json:"website,omitempty"`
	Source           string     `json:"source,omitempty"`
}

// StringList holds a field that sources emit either as a single string or
// as an array of strings. It round-trips losslessly: a value decoded from
// a bare string encodes back to a bare string.
type StringList struct {
	values []string
	single bool
}

// Single wraps one string as a StringList.
func Single(value string) StringList {
	return StringList{values: []string{value}, single: true}
}

// Many wraps a slice of strings as a StringList.
func Many(values ...string) StringList {
	return StringList{values: values}
}

// Values returns the entries as a slice regardless of the wire shape.
// A single empty string counts as no entries.
func (l StringList) Values() []string {
	if len(l.values) == 1 && l.values[0] == "" {
		return nil
	}
	return l.values
}

// IsEmpty reports whether the list carries no usable entries.
func (l StringList) IsEmpty() bool {
	return len(l.Values()) == 0
}

// IsZero lets encoding/json's omitzero drop fields that were never set.
// A decoded empty string or empty array is kept so it round-trips.
func (l StringList) IsZero() bool {
	return l.values == nil
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{values: []string{single}, single: true}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("string list must be a string or an array of strings: %w", err)
	}
	*l = StringList{values: many}
	return nil
}

// MarshalJSON writes back the shape the value was decoded from.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l.single && len(l.values) == 1 {
		return json.Marshal(l.values[0])
	}
	if l.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.values)
}
