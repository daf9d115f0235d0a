package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/study/mock_repository.go -package=mock_study

// RecordRepository defines the persistence contract the scheduler consumes.
type RecordRepository interface {
	// FindActiveByTrack returns every record belonging to a track, including
	// the stage flags and performance fields.
	FindActiveByTrack(ctx context.Context, trackID string) ([]Record, error)

	// FindByID returns a single record, or nil if it does not exist.
	FindByID(ctx context.Context, id int64) (*Record, error)

	// Update persists the mutable fields of a record. Writing the same flag
	// state twice is a no-op, so retries are safe.
	Update(ctx context.Context, record *Record) error

	// Create inserts a new record and sets its generated ID.
	Create(ctx context.Context, record *Record) error
}

// DBRecordRepository implements RecordRepository using MySQL.
type DBRecordRepository struct {
	db *sqlx.DB
}

// NewDBRecordRepository creates a new DBRecordRepository.
func NewDBRecordRepository(db *sqlx.DB) *DBRecordRepository {
	return &DBRecordRepository{db: db}
}

// FindActiveByTrack returns all records for a track ordered by study date.
func (r *DBRecordRepository) FindActiveByTrack(ctx context.Context, trackID string) ([]Record, error) {
	var records []Record
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM study_records WHERE track_id = ? ORDER BY study_date, id",
		trackID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(study_records by track) > %w", err)
	}
	return records, nil
}

// FindByID returns the record with the given id, or nil if not found.
func (r *DBRecordRepository) FindByID(ctx context.Context, id int64) (*Record, error) {
	var record Record
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM study_records WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(study_record) > %w", err)
	}
	return &record, nil
}

// Update persists the mutable fields of a record.
func (r *DBRecordRepository) Update(ctx context.Context, record *Record) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE study_records
		SET subject = ?, topic = ?, study_date = ?, category = ?,
			correct_count = ?, total_count = ?, minutes_spent = ?, relevance = ?,
			difficulty = ?, notes = ?,
			stage_24h = ?, stage_07d = ?, stage_15d = ?, stage_30d = ?
		WHERE id = ?`,
		record.Subject, record.Topic, record.StudyDate, record.Category,
		record.CorrectCount, record.TotalCount, record.MinutesSpent, record.Relevance,
		record.Difficulty, record.Notes,
		record.Stage24h, record.Stage07d, record.Stage15d, record.Stage30d,
		record.ID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update study_record) > %w", err)
	}
	return nil
}

// Create inserts a new record.
func (r *DBRecordRepository) Create(ctx context.Context, record *Record) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO study_records
		(owner_id, track_id, subject, topic, study_date, category,
			correct_count, total_count, minutes_spent, relevance, difficulty, notes,
			stage_24h, stage_07d, stage_15d, stage_30d)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.OwnerID, record.TrackID, record.Subject, record.Topic,
		record.StudyDate, record.Category,
		record.CorrectCount, record.TotalCount, record.MinutesSpent,
		record.Relevance, record.Difficulty, record.Notes,
		record.Stage24h, record.Stage07d, record.Stage15d, record.Stage30d)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert study_record) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	record.ID = id
	return nil
}
