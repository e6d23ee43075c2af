package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"yakugen/domain/core"
	"yakugen/domain/puzzle"
	"yakugen/ports"
)

// PuzzleRepositoryImpl implements PuzzleRepository for PostgreSQL. The full
// batch payload is stored as JSONB; summary columns are denormalized for
// listing without payload scans.
type PuzzleRepositoryImpl struct {
	db *sqlx.DB
}

// NewPuzzleRepository creates a new PostgreSQL puzzle repository.
func NewPuzzleRepository(db *sqlx.DB) ports.PuzzleRepository {
	return &PuzzleRepositoryImpl{db: db}
}

// Connect opens a PostgreSQL connection and ensures the schema exists.
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("[PuzzleRepository] connected to postgres")
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS puzzle_batches (
			id TEXT PRIMARY KEY,
			total_instructions INTEGER NOT NULL,
			total_candidates INTEGER NOT NULL,
			total_successes INTEGER NOT NULL,
			success_rate DOUBLE PRECISION NOT NULL,
			instruction_success_rate DOUBLE PRECISION NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create puzzle_batches table: %w", err)
	}
	return nil
}

// SaveBatch persists a batch result, replacing any previous run with the
// same ID.
func (r *PuzzleRepositoryImpl) SaveBatch(ctx context.Context, result *puzzle.BatchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal batch payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO puzzle_batches (
			id, total_instructions, total_candidates, total_successes,
			success_rate, instruction_success_rate, payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			total_instructions = EXCLUDED.total_instructions,
			total_candidates = EXCLUDED.total_candidates,
			total_successes = EXCLUDED.total_successes,
			success_rate = EXCLUDED.success_rate,
			instruction_success_rate = EXCLUDED.instruction_success_rate,
			payload = EXCLUDED.payload`,
		result.ID.String(), result.TotalInstructions, result.TotalCandidates,
		result.TotalSuccesses, result.SuccessRate, result.InstructionSuccessRate,
		payload)
	if err != nil {
		return fmt.Errorf("failed to save batch %s: %w", result.ID.String(), err)
	}

	log.Printf("[PuzzleRepository] saved batch %s (%d instructions, %d candidates)",
		result.ID.String(), result.TotalInstructions, result.TotalCandidates)
	return nil
}

// GetBatch retrieves a batch result by ID.
func (r *PuzzleRepositoryImpl) GetBatch(ctx context.Context, batchID string) (*puzzle.BatchResult, error) {
	id, err := core.ParseBatchID(batchID)
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = r.db.QueryRowContext(ctx,
		`SELECT payload FROM puzzle_batches WHERE id = $1`, id.String()).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("batch %s not found", batchID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s: %w", batchID, err)
	}

	var result puzzle.BatchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch payload: %w", err)
	}
	return &result, nil
}

// ListBatches returns recent batch summaries, newest first.
func (r *PuzzleRepositoryImpl) ListBatches(ctx context.Context, limit int) ([]puzzle.GlobalSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, total_instructions, total_candidates, total_successes,
		       success_rate, instruction_success_rate
		FROM puzzle_batches
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var summaries []puzzle.GlobalSummary
	for rows.Next() {
		var s puzzle.GlobalSummary
		if err := rows.Scan(&s.BatchID, &s.TotalInstructions, &s.TotalCandidates,
			&s.TotalSuccesses, &s.SuccessRate, &s.InstructionSuccessRate); err != nil {
			return nil, fmt.Errorf("failed to scan batch summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
