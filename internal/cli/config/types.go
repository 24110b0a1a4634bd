// Package config provides configuration management for the pipeforge CLI.
//
// Configuration merges four layers with increasing precedence: built-in
// defaults, the pipeforge.yaml project file, PIPEFORGE_* environment
// variables, and explicitly set command-line flags. The merged result is
// a single Config value stored in the command context.
package config

import (
	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
)

// Config holds all CLI configuration options.
type Config struct {
	ProjectName string         `koanf:"project_name"`
	LogLevel    string         `koanf:"log_level"`
	Output      string         `koanf:"output"`
	Verbose     bool           `koanf:"verbose"`
	StatePath   string         `koanf:"state_path"`
	Compile     CompileConfig  `koanf:"compile"`
	Generate    GenerateConfig `koanf:"generate"`
	Serve       ServeConfig    `koanf:"serve"`
	Pipelines   []PipelineSpec `koanf:"pipelines"`

	// ProjectRoot is the directory relative paths resolve against. It is
	// derived at load time, never read from a file.
	ProjectRoot string `koanf:"-"`
}

// CompileConfig holds the descriptor construction options. Zero values
// defer to the defaults applied by descriptor.Build.
type CompileConfig struct {
	SourceType       string `koanf:"source_type" yaml:"source_type"`
	SinkType         string `koanf:"sink_type" yaml:"sink_type"`
	SinkTable        string `koanf:"sink_table" yaml:"sink_table"`
	SinkURL          string `koanf:"sink_url" yaml:"sink_url"`
	TimestampColumn  string `koanf:"timestamp_column" yaml:"timestamp_column"`
	IDColumn         string `koanf:"id_column" yaml:"id_column"`
	BatchSize        int    `koanf:"batch_size" yaml:"batch_size"`
	WatermarkEnabled bool   `koanf:"watermark_enabled" yaml:"watermark_enabled"`
	Incremental      bool   `koanf:"incremental" yaml:"incremental"`
}

// GenerateConfig holds options for the generate command.
type GenerateConfig struct {
	OutDir      string `koanf:"out_dir"`
	TemplateSet string `koanf:"template_set"`
	Workers     int    `koanf:"workers"`
}

// ServeConfig holds options for the HTTP service.
type ServeConfig struct {
	Addr  string `koanf:"addr"`
	Watch bool   `koanf:"watch"`
}

// PipelineSpec is one entry of the pipelines manifest. SQL may be given
// inline or loaded from File; inline SQL wins when both are set. The
// optional Compile block overrides the project-wide compile options for
// this pipeline only.
type PipelineSpec struct {
	Name    string         `koanf:"name" yaml:"name"`
	File    string         `koanf:"file" yaml:"file"`
	SQL     string         `koanf:"sql" yaml:"sql"`
	Compile *CompileConfig `koanf:"compile" yaml:"compile"`
}

// Default configuration values.
const (
	DefaultStateFile   = ".pipeforge/state.db"
	DefaultLogLevel    = "info"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultOutDir      = "generated"
	DefaultTemplateSet = "python-worker"
	DefaultWorkers     = 4
	DefaultServeAddr   = ":8088"
)

// DescriptorConfig converts the compile options into the option set
// consumed by descriptor.Build.
func (c CompileConfig) DescriptorConfig(projectName string) descriptor.Config {
	return descriptor.Config{
		ProjectName:      projectName,
		BatchSize:        c.BatchSize,
		WatermarkEnabled: c.WatermarkEnabled,
		Incremental:      c.Incremental,
		TimestampColumn:  c.TimestampColumn,
		IDColumn:         c.IDColumn,
		SourceType:       c.SourceType,
		Sink: descriptor.SinkConfig{
			Type:       c.SinkType,
			Table:      c.SinkTable,
			DefaultURL: c.SinkURL,
		},
	}
}

// Merge returns a copy of c with the non-zero fields of override applied.
// A nil override returns c unchanged.
func (c CompileConfig) Merge(override *CompileConfig) CompileConfig {
	if override == nil {
		return c
	}
	merged := c
	if override.SourceType != "" {
		merged.SourceType = override.SourceType
	}
	if override.SinkType != "" {
		merged.SinkType = override.SinkType
	}
	if override.SinkTable != "" {
		merged.SinkTable = override.SinkTable
	}
	if override.SinkURL != "" {
		merged.SinkURL = override.SinkURL
	}
	if override.TimestampColumn != "" {
		merged.TimestampColumn = override.TimestampColumn
	}
	if override.IDColumn != "" {
		merged.IDColumn = override.IDColumn
	}
	if override.BatchSize != 0 {
		merged.BatchSize = override.BatchSize
	}
	if override.WatermarkEnabled {
		merged.WatermarkEnabled = true
	}
	if override.Incremental {
		merged.Incremental = true
	}
	return merged
}
