// Package descriptor builds pipeline descriptors. A descriptor is the
// complete, template-ready description of one data-movement pipeline:
// the resolved source and sink, the selected columns, the normalized
// filter conditions, and the watermark columns. It is the sole contract
// handed to the template renderer.
//
// Build accepts either a parsed AST statement or a previously persisted
// canonical map, is deterministic, and performs no I/O.
package descriptor

import (
	"fmt"

	"github.com/pipeforge-labs/pipeforge/pkg/source"
)

// Fallback column names used when neither configuration nor detection
// yields one.
const (
	DefaultTimestampColumn = "timestamp"
	DefaultIDColumn        = "id"
)

// Wildcard is the column-list marker for "all columns".
const Wildcard = "*"

// ConditionKind discriminates the condition entry variants.
type ConditionKind string

const (
	// ConditionComparison is a single column-operator-value test.
	ConditionComparison ConditionKind = "comparison"
	// ConditionMembership is an IN or NOT IN test.
	ConditionMembership ConditionKind = "membership"
	// ConditionDisjunction is an OR-composite left for the sink-side
	// query builder to interpret.
	ConditionDisjunction ConditionKind = "disjunction"
	// ConditionConjunction is an AND-composite nested inside a
	// disjunction. Top-level conjunctions are flattened away instead.
	ConditionConjunction ConditionKind = "conjunction"
)

// Condition is one normalized filter entry. Value and Values carry text
// formatted for direct embedding into generated source: string values
// keep their surrounding quote markers, numeric values are bare digits.
type Condition struct {
	Kind     ConditionKind `json:"kind" yaml:"kind"`
	Column   string        `json:"column,omitempty" yaml:"column,omitempty"`
	Operator string        `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    string        `json:"value,omitempty" yaml:"value,omitempty"`
	Values   []string      `json:"values,omitempty" yaml:"values,omitempty"`
	Negated  bool          `json:"negated,omitempty" yaml:"negated,omitempty"`
	Or       []Condition   `json:"or,omitempty" yaml:"or,omitempty"`
	And      []Condition   `json:"and,omitempty" yaml:"and,omitempty"`
}

// Sink describes where the pipeline writes.
type Sink struct {
	Type       string `json:"type" yaml:"type"`
	Table      string `json:"table" yaml:"table"`
	DefaultURL string `json:"default_url" yaml:"default_url"`
}

// Descriptor is the built pipeline description. Immutable after
// construction.
type Descriptor struct {
	Source          source.Classification `json:"source" yaml:"source"`
	Sink            Sink                  `json:"sink" yaml:"sink"`
	Columns         []string              `json:"columns" yaml:"columns"`
	Conditions      []Condition           `json:"conditions" yaml:"conditions"`
	TimestampColumn string                `json:"timestamp_column" yaml:"timestamp_column"`
	IDColumn        string                `json:"id_column" yaml:"id_column"`
	Config          Config                `json:"config" yaml:"config"`
}

// Error is a descriptor construction error.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("descriptor error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("descriptor error: %s", e.Message)
}
