package telemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

var (
	// ErrStoreNotInitialized is returned when a store is used before Init or after Close.
	ErrStoreNotInitialized = errors.New("store is not initialized")
	// ErrNoChampion is returned when a run has not recorded a champion yet.
	ErrNoChampion = errors.New("no champion recorded")
)

// NewRunID returns a fresh identifier for a training run.
func NewRunID() string {
	return uuid.NewString()
}

// SQLiteStore keeps the generation history of training runs.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore creates a store backed by the database file at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the tables if needed.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("creating tables: %w", err)
	}

	s.db = db
	return nil
}

// BeginRun records the start of a run.
func (s *SQLiteStore) BeginRun(ctx context.Context, runID string, seed int64, configYAML []byte) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, seed, config)
		VALUES (?, ?, ?, ?)
	`, runID, time.Now().UTC().Format(time.RFC3339), seed, string(configYAML))
	if err != nil {
		return fmt.Errorf("recording run %s: %w", runID, err)
	}
	return nil
}

// SaveGeneration stores one generation summary. Saving the same generation
// twice replaces the earlier row.
func (s *SQLiteStore) SaveGeneration(ctx context.Context, g GenerationStats) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO generations (
			run_id, generation, entrants, score, ticks,
			best_fitness, mean_fitness, std_fitness, median_fitness, worst_fitness,
			collisions, ground_deaths, ceiling_deaths, malformed_outputs, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			entrants = excluded.entrants,
			score = excluded.score,
			ticks = excluded.ticks,
			best_fitness = excluded.best_fitness,
			mean_fitness = excluded.mean_fitness,
			std_fitness = excluded.std_fitness,
			median_fitness = excluded.median_fitness,
			worst_fitness = excluded.worst_fitness,
			collisions = excluded.collisions,
			ground_deaths = excluded.ground_deaths,
			ceiling_deaths = excluded.ceiling_deaths,
			malformed_outputs = excluded.malformed_outputs,
			duration_ms = excluded.duration_ms
	`, g.RunID, g.Generation, g.Entrants, g.Score, g.Ticks,
		g.BestFitness, g.MeanFitness, g.StdFitness, g.MedianFitness, g.WorstFitness,
		g.Collisions, g.GroundDeaths, g.CeilingDeaths, g.Malformed, g.DurationMS)
	if err != nil {
		return fmt.Errorf("saving generation %d: %w", g.Generation, err)
	}
	return nil
}

// Generations returns a run's generation history in order.
func (s *SQLiteStore) Generations(ctx context.Context, runID string) ([]GenerationStats, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT generation, entrants, score, ticks,
			best_fitness, mean_fitness, std_fitness, median_fitness, worst_fitness,
			collisions, ground_deaths, ceiling_deaths, malformed_outputs, duration_ms
		FROM generations WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	defer rows.Close()

	var out []GenerationStats
	for rows.Next() {
		g := GenerationStats{RunID: runID}
		if err := rows.Scan(&g.Generation, &g.Entrants, &g.Score, &g.Ticks,
			&g.BestFitness, &g.MeanFitness, &g.StdFitness, &g.MedianFitness, &g.WorstFitness,
			&g.Collisions, &g.GroundDeaths, &g.CeilingDeaths, &g.Malformed, &g.DurationMS); err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// SaveChampion stores the best controller of a run, replacing any earlier one.
func (s *SQLiteStore) SaveChampion(ctx context.Context, runID string, e HallEntry) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding champion: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO champions (run_id, generation, fitness, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			generation = excluded.generation,
			fitness = excluded.fitness,
			payload = excluded.payload
	`, runID, e.Generation, e.Fitness, payload)
	if err != nil {
		return fmt.Errorf("saving champion: %w", err)
	}
	return nil
}

// Champion returns the stored best controller of a run.
func (s *SQLiteStore) Champion(ctx context.Context, runID string) (HallEntry, error) {
	db, err := s.getDB()
	if err != nil {
		return HallEntry{}, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM champions WHERE run_id = ?`, runID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return HallEntry{}, fmt.Errorf("run %s: %w", runID, ErrNoChampion)
	}
	if err != nil {
		return HallEntry{}, fmt.Errorf("loading champion: %w", err)
	}

	var e HallEntry
	if err := json.Unmarshal(payload, &e); err != nil {
		return HallEntry{}, fmt.Errorf("decoding champion for run %s: %w", runID, err)
	}
	return e, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			entrants INTEGER NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			best_fitness REAL NOT NULL,
			mean_fitness REAL NOT NULL,
			std_fitness REAL NOT NULL,
			median_fitness REAL NOT NULL,
			worst_fitness REAL NOT NULL,
			collisions INTEGER NOT NULL,
			ground_deaths INTEGER NOT NULL,
			ceiling_deaths INTEGER NOT NULL,
			malformed_outputs INTEGER NOT NULL,
			duration_ms REAL NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
		CREATE TABLE IF NOT EXISTS champions (
			run_id TEXT PRIMARY KEY,
			generation INTEGER NOT NULL,
			fitness REAL NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
