// Package source classifies pipeline source types: it maps a source-type
// tag such as "cassandra" or "csv" to a category, the connection
// parameters generated code should read from its environment, and the
// watermark strategy for incremental extraction.
//
// Classification is a pure derivation. Environment-variable names are
// produced as data for the template renderer; nothing in this package
// reads the process environment.
package source

// Category groups source types by how they are reached.
type Category string

const (
	CategoryFile     Category = "file"
	CategoryDatabase Category = "database"
	CategoryAPI      Category = "api"
)

// Watermark strategies.
const (
	StrategyRowNumber = "row_number"
	StrategyComposite = "composite"
)

// RowNumberColumn is the bookkeeping column used by row-number
// watermarks. It is reserved: the descriptor builder never treats it as
// a user-selected data column.
const RowNumberColumn = "row_number"

// Connection describes how generated code reaches a source: the
// environment-variable names to read and the defaults to fall back on.
type Connection struct {
	EnvVars      map[string]string `json:"env_vars" yaml:"env_vars"`
	Defaults     map[string]string `json:"defaults" yaml:"defaults"`
	TemplateKind string            `json:"template_kind" yaml:"template_kind"`
}

// Watermark describes the incremental-resume strategy derived for a
// source.
type Watermark struct {
	Strategy       string `json:"strategy" yaml:"strategy"`
	UsesComposite  bool   `json:"uses_composite" yaml:"uses_composite"`
	TimestampBased bool   `json:"timestamp_based" yaml:"timestamp_based"`
}

// Classification is the full derivation for one source.
type Classification struct {
	Type            string     `json:"type" yaml:"type"`
	Table           string     `json:"table" yaml:"table"`
	Schema          string     `json:"schema,omitempty" yaml:"schema,omitempty"`
	Category        Category   `json:"category" yaml:"category"`
	Connection      Connection `json:"connection" yaml:"connection"`
	Watermark       Watermark  `json:"watermark" yaml:"watermark"`
	ReservedColumns []string   `json:"reserved_columns" yaml:"reserved_columns"`
}
