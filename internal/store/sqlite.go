// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/asd-screening/backend/internal/domain/assessment"
	"github.com/asd-screening/backend/internal/domain/program"
	"github.com/asd-screening/backend/internal/domain/screening"
)

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    date_of_birth TEXT NOT NULL,
    scores TEXT NOT NULL,
    answers TEXT NOT NULL,
    score REAL NOT NULL,
    tier TEXT NOT NULL,
    program TEXT NOT NULL,
    program_details TEXT NOT NULL,
    prominent TEXT NOT NULL,
    confidence TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (name, date_of_birth)
);
`

// timeLayout is fixed-width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const recordColumns = `id, name, date_of_birth, scores, answers, score, tier, program,
    program_details, prominent, confidence, created_at, updated_at`

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection serializes them here
	// instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Assessments
// ============================================================================

func (s *SQLiteStore) Upsert(ctx context.Context, rec *assessment.Record) error {
	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("encode program details: %w", err)
	}
	prominent, err := json.Marshal(rec.Prominent)
	if err != nil {
		return fmt.Errorf("encode prominent criterion: %w", err)
	}
	confidence, err := json.Marshal(rec.Confidence)
	if err != nil {
		return fmt.Errorf("encode confidence: %w", err)
	}

	now := s.now().Format(timeLayout)

	var createdAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO assessments (name, date_of_birth, scores, answers, score, tier, program,
			program_details, prominent, confidence, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name, date_of_birth) DO UPDATE SET
			scores = excluded.scores,
			answers = excluded.answers,
			score = excluded.score,
			tier = excluded.tier,
			program = excluded.program,
			program_details = excluded.program_details,
			prominent = excluded.prominent,
			confidence = excluded.confidence,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`,
		rec.Name, rec.DateOfBirth, string(scores), string(answers), rec.Score, string(rec.Tier), rec.Program,
		string(details), string(prominent), string(confidence), now, now,
	).Scan(&rec.ID, &createdAt)
	if err != nil {
		return err
	}

	if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return fmt.Errorf("parse created_at: %w", err)
	}
	rec.UpdatedAt, _ = time.Parse(timeLayout, now)
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (*assessment.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM assessments WHERE id = ?", id)
	return scanRecord(row)
}

func (s *SQLiteStore) GetByIdentity(ctx context.Context, id assessment.Identity) (*assessment.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM assessments WHERE name = ? AND date_of_birth = ?",
		id.Name, id.DateOfBirth,
	)
	return scanRecord(row)
}

func (s *SQLiteStore) List(ctx context.Context) ([]*assessment.Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+recordColumns+" FROM assessments ORDER BY updated_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*assessment.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) DeleteByIdentity(ctx context.Context, id assessment.Identity) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM assessments WHERE name = ? AND date_of_birth = ?",
		id.Name, id.DateOfBirth,
	)
	if err != nil {
		return 0, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*assessment.Record, error) {
	var (
		rec                                             assessment.Record
		tier                                            string
		scores, answers, details, prominent, confidence string
		createdAt, updatedAt                            string
	)
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.DateOfBirth, &scores, &answers, &rec.Score, &tier, &rec.Program,
		&details, &prominent, &confidence, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.Tier = screening.Tier(tier)

	fields := []struct {
		name string
		raw  string
		dst  any
	}{
		{"scores", scores, &rec.Scores},
		{"answers", answers, &rec.Answers},
		{"program_details", details, &rec.Details},
		{"prominent", prominent, &rec.Prominent},
		{"confidence", confidence, &rec.Confidence},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("decode %s of record %d: %w", f.name, rec.ID, err)
		}
	}
	if rec.Confidence == nil {
		rec.Confidence = []program.Confidence{}
	}

	if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at of record %d: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at of record %d: %w", rec.ID, err)
	}
	return &rec, nil
}
