// Package export provides import/export orchestration between YAML files
// and the database.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/rbarros/studytrack/internal/study"
)

type recordKey struct {
	subject, topic, date, category string
}

func keyOf(rec study.Record) recordKey {
	return recordKey{
		subject:  rec.Subject,
		topic:    rec.Topic,
		date:     rec.StudyDate.String(),
		category: string(rec.Category),
	}
}

// ImportResult tracks counts for one import run.
type ImportResult struct {
	New     int
	Skipped int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// Importer reads YAML study records and writes them to the database.
type Importer struct {
	records study.RecordRepository
	writer  io.Writer
}

// NewImporter creates a new Importer. Progress lines go to writer.
func NewImporter(records study.RecordRepository, writer io.Writer) *Importer {
	return &Importer{
		records: records,
		writer:  writer,
	}
}

// ImportRecords imports source records into trackID, skipping records that
// already exist with the same subject, topic, study date and category.
func (imp *Importer) ImportRecords(ctx context.Context, trackID string, sourceRecords []study.Record, opts ImportOptions) (*ImportResult, error) {
	existing, err := imp.records.FindActiveByTrack(ctx, trackID)
	if err != nil {
		return nil, fmt.Errorf("load existing records: %w", err)
	}

	seen := make(map[recordKey]bool, len(existing))
	for _, rec := range existing {
		seen[keyOf(rec)] = true
	}

	result := &ImportResult{}
	for i := range sourceRecords {
		rec := sourceRecords[i]
		rec.TrackID = trackID

		key := keyOf(rec)
		if seen[key] {
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %s / %s (%s)\n", rec.Subject, rec.Topic, rec.StudyDate)
			result.Skipped++
			continue
		}

		if !opts.DryRun {
			rec.ID = 0
			if err := imp.records.Create(ctx, &rec); err != nil {
				return nil, fmt.Errorf("create record %s / %s: %w", rec.Subject, rec.Topic, err)
			}
		}
		seen[key] = true
		_, _ = fmt.Fprintf(imp.writer, "  [NEW]  %s / %s (%s)\n", rec.Subject, rec.Topic, rec.StudyDate)
		result.New++
	}

	return result, nil
}

// Exporter writes the records of a track to a YAML file.
type Exporter struct {
	records study.RecordRepository
	sink    *YAMLRecordSink
}

// NewExporter creates a new Exporter.
func NewExporter(records study.RecordRepository, sink *YAMLRecordSink) *Exporter {
	return &Exporter{
		records: records,
		sink:    sink,
	}
}

// ExportRecords dumps all records of trackID and returns the written path.
func (exp *Exporter) ExportRecords(ctx context.Context, trackID string) (string, error) {
	records, err := exp.records.FindActiveByTrack(ctx, trackID)
	if err != nil {
		return "", fmt.Errorf("load records: %w", err)
	}
	path, err := exp.sink.WriteAll(trackID, records)
	if err != nil {
		return "", fmt.Errorf("sink.WriteAll(%s) > %w", trackID, err)
	}
	return path, nil
}
