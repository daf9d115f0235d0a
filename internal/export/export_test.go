package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rbarros/studytrack/internal/calendar"
	mock_study "github.com/rbarros/studytrack/internal/mocks/study"
	"github.com/rbarros/studytrack/internal/study"
)

func sampleRecord(topic string, date string) study.Record {
	return study.Record{
		TrackID:   "enare-2026",
		Subject:   "Physiology",
		Topic:     topic,
		StudyDate: calendar.MustParse(date),
		Category:  study.CategoryStudy,
		Relevance: 4,
	}
}

func TestExporter_ExportRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_study.NewMockRecordRepository(ctrl)

	records := []study.Record{
		sampleRecord("Renal clearance", "2025-06-01"),
		sampleRecord("Acid-base balance", "2025-06-03"),
	}
	repo.EXPECT().FindActiveByTrack(gomock.Any(), "enare-2026").Return(records, nil)

	dir := t.TempDir()
	exporter := NewExporter(repo, NewYAMLRecordSink(dir))

	path, err := exporter.ExportRecords(context.Background(), "enare-2026")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "enare-2026.yml"), path)

	loaded, err := ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Renal clearance", loaded[0].Topic)
	assert.Equal(t, calendar.MustParse("2025-06-01"), loaded[0].StudyDate)
}

func TestImporter_ImportRecords(t *testing.T) {
	t.Run("creates new records and skips duplicates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_study.NewMockRecordRepository(ctrl)

		existing := sampleRecord("Renal clearance", "2025-06-01")
		existing.ID = 7
		repo.EXPECT().FindActiveByTrack(gomock.Any(), "enare-2026").Return([]study.Record{existing}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rec *study.Record) error {
				assert.Equal(t, "Acid-base balance", rec.Topic)
				assert.Equal(t, "enare-2026", rec.TrackID)
				assert.Zero(t, rec.ID)
				rec.ID = 8
				return nil
			})

		var out bytes.Buffer
		importer := NewImporter(repo, &out)

		result, err := importer.ImportRecords(context.Background(), "enare-2026", []study.Record{
			sampleRecord("Renal clearance", "2025-06-01"),
			sampleRecord("Acid-base balance", "2025-06-03"),
		}, ImportOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.New)
		assert.Equal(t, 1, result.Skipped)
		assert.Contains(t, out.String(), "[SKIP]  Physiology / Renal clearance")
		assert.Contains(t, out.String(), "[NEW]  Physiology / Acid-base balance")
	})

	t.Run("dry run never writes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_study.NewMockRecordRepository(ctrl)
		repo.EXPECT().FindActiveByTrack(gomock.Any(), "enare-2026").Return(nil, nil)

		var out bytes.Buffer
		importer := NewImporter(repo, &out)

		result, err := importer.ImportRecords(context.Background(), "enare-2026", []study.Record{
			sampleRecord("Acid-base balance", "2025-06-03"),
		}, ImportOptions{DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, 1, result.New)
	})

	t.Run("duplicate rows inside the source file are collapsed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_study.NewMockRecordRepository(ctrl)
		repo.EXPECT().FindActiveByTrack(gomock.Any(), "enare-2026").Return(nil, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		var out bytes.Buffer
		importer := NewImporter(repo, &out)

		result, err := importer.ImportRecords(context.Background(), "enare-2026", []study.Record{
			sampleRecord("Acid-base balance", "2025-06-03"),
			sampleRecord("Acid-base balance", "2025-06-03"),
		}, ImportOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.New)
		assert.Equal(t, 1, result.Skipped)
	})
}
