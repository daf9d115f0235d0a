package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rbarros/studytrack/internal/study"
)

// YAMLRecordSink writes study records to YAML files.
type YAMLRecordSink struct {
	outputDir string
}

// NewYAMLRecordSink creates a new YAMLRecordSink.
func NewYAMLRecordSink(outputDir string) *YAMLRecordSink {
	return &YAMLRecordSink{outputDir: outputDir}
}

// WriteAll writes all records of one track to <track>.yml.
func (s *YAMLRecordSink) WriteAll(trackID string, records []study.Record) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, trackID+".yml")
	if err := writeYAML(path, records); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

// ReadRecords loads study records from a YAML file written by WriteAll
// or maintained by hand.
func ReadRecords(path string) ([]study.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var records []study.Record
	if err := yaml.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("yaml.Decode(%s) > %w", path, err)
	}
	return records, nil
}
