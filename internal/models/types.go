package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ContentType represents the type of content (movie or tv show)
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeTV    ContentType = "tv"
)

// IsValid reports whether the content type is one of the known values
func (t ContentType) IsValid() bool {
	return t == ContentTypeMovie || t == ContentTypeTV
}

// Status represents the watch status of a content item
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusWatching  Status = "watching"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
	StatusOnHold    Status = "on_hold"
)

// IsValid reports whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusWatching, StatusCompleted, StatusDropped, StatusOnHold:
		return true
	}
	return false
}

// StringList is a list of strings stored as a JSON array in a text column
type StringList []string

// Value serializes the list for storage. A nil list is stored as an empty
// JSON array so genre predicates can rely on the column being valid JSON.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan deserializes the list from storage
func (l *StringList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

// Contains reports whether the list contains the given value
func (l StringList) Contains(v string) bool {
	for _, item := range l {
		if item == v {
			return true
		}
	}
	return false
}

// IntList is a list of ints stored as a JSON array in a text column
type IntList []int

// Value serializes the list for storage
func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]int(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal int list: %w", err)
	}
	return string(data), nil
}

// Scan deserializes the list from storage
func (l *IntList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

// FloatList is a list of floats stored as a JSON array in a text column.
// Holds opaque embedding vectors attached by external tooling.
type FloatList []float64

// Value serializes the list for storage
func (l FloatList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]float64(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal float list: %w", err)
	}
	return string(data), nil
}

// Scan deserializes the list from storage
func (l *FloatList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

func scanJSONList(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T for JSON list", value)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSON list: %w", err)
	}
	return nil
}
