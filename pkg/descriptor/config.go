package descriptor

import "github.com/go-viper/mapstructure/v2"

// Defaults applied by Build when the corresponding option is unset.
const (
	DefaultSourceType = "cassandra"
	DefaultSinkType   = "druid"
	DefaultBatchSize  = 1000
)

// Config carries the user-tunable options for one generation request.
// All fields are optional; zero values take the documented defaults.
type Config struct {
	ProjectName      string     `json:"project_name,omitempty" yaml:"project_name,omitempty" koanf:"project_name" mapstructure:"project_name"`
	BatchSize        int        `json:"batch_size,omitempty" yaml:"batch_size,omitempty" koanf:"batch_size" mapstructure:"batch_size"`
	WatermarkEnabled bool       `json:"watermark_enabled" yaml:"watermark_enabled" koanf:"watermark_enabled" mapstructure:"watermark_enabled"`
	Incremental      bool       `json:"incremental" yaml:"incremental" koanf:"incremental" mapstructure:"incremental"`
	TimestampColumn  string     `json:"timestamp_column,omitempty" yaml:"timestamp_column,omitempty" koanf:"timestamp_column" mapstructure:"timestamp_column"`
	IDColumn         string     `json:"id_column,omitempty" yaml:"id_column,omitempty" koanf:"id_column" mapstructure:"id_column"`
	SourceType       string     `json:"source_type,omitempty" yaml:"source_type,omitempty" koanf:"source_type" mapstructure:"source_type"`
	Sink             SinkConfig `json:"sink,omitempty" yaml:"sink,omitempty" koanf:"sink" mapstructure:"sink"`
}

// SinkConfig is the sink portion of the configuration.
type SinkConfig struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty" koanf:"type" mapstructure:"type"`
	Table      string `json:"table,omitempty" yaml:"table,omitempty" koanf:"table" mapstructure:"table"`
	DefaultURL string `json:"default_url,omitempty" yaml:"default_url,omitempty" koanf:"default_url" mapstructure:"default_url"`
}

// ConfigFromMap decodes a generic option map into a Config. Decoding is
// weakly typed so JSON-reloaded maps (where every number is a float64)
// decode the same as hand-built ones.
func ConfigFromMap(m map[string]any) (Config, error) {
	return Config{}.MergeMap(m)
}

// MergeMap decodes a generic option map on top of c and returns the
// result. Keys absent from the map keep their value from c, which makes
// it suitable for overlaying per-request options on a base config.
func (c Config) MergeMap(m map[string]any) (Config, error) {
	cfg := c
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(m); err != nil {
		return Config{}, &Error{Field: "config", Message: err.Error()}
	}
	return cfg, nil
}
