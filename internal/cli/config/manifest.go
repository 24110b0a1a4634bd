package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadManifest reads pipeline entries from a standalone manifest file.
// The file carries the same pipelines block as pipeforge.yaml.
func LoadManifest(path string) ([]PipelineSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var doc struct {
		Pipelines []PipelineSpec `yaml:"pipelines"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(doc.Pipelines) == 0 {
		return nil, fmt.Errorf("manifest %s defines no pipelines", path)
	}
	return doc.Pipelines, nil
}

// LoadSQL returns the pipeline's SQL text, reading File relative to root
// when no inline SQL is given.
func (p PipelineSpec) LoadSQL(root string) (string, error) {
	if p.SQL != "" {
		return p.SQL, nil
	}
	if p.File == "" {
		return "", fmt.Errorf("pipeline %q: no sql text or file", p.Name)
	}
	path := p.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("pipeline %q: %w", p.Name, err)
	}
	return string(data), nil
}
