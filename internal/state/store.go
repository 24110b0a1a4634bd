// Package state persists pipeline generation history using SQLite.
// Every compile that runs as part of a generate batch or an API call is
// recorded with its SQL text, the built descriptor, and the outcome, so
// past generations can be listed, inspected, and pruned.
package state

import (
	"errors"
	"time"
)

// ErrNotOpened is returned by store methods called before Open.
var ErrNotOpened = errors.New("database not opened")

// DefaultListLimit caps generation listings when no limit is given.
const DefaultListLimit = 50

// GenerationStatus is the outcome of one recorded generation.
type GenerationStatus string

const (
	// GenerationStatusSuccess marks a generation whose descriptor was
	// built and rendered.
	GenerationStatusSuccess GenerationStatus = "success"
	// GenerationStatusError marks a generation that failed at any stage.
	GenerationStatusError GenerationStatus = "error"
)

// Generation is one recorded pipeline generation.
type Generation struct {
	ID             string           `json:"id"`
	Pipeline       string           `json:"pipeline"`
	SQLText        string           `json:"sql_text"`
	DescriptorJSON string           `json:"descriptor_json,omitempty"`
	SourceType     string           `json:"source_type,omitempty"`
	SinkType       string           `json:"sink_type,omitempty"`
	Status         GenerationStatus `json:"status"`
	Error          string           `json:"error,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ListFilter narrows ListGenerations results. Zero values mean no
// filtering; a non-positive Limit falls back to DefaultListLimit.
type ListFilter struct {
	Pipeline string
	Limit    int
}
