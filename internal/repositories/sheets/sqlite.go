package sheets

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS sheets (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		doc TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sheets_owner_id ON sheets (owner_id)`,
}

// SQLiteRepoConfig holds configuration for the SQLite repository
type SQLiteRepoConfig struct {
	DB           *sql.DB
	TimeProvider TimeProvider
}

type sqliteRepo struct {
	db           *sql.DB
	timeProvider TimeProvider
}

// OpenSQLite opens the sheet database at path, creating the schema if needed
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to open sqlite database")
	}
	// a single connection serializes writers
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, dnderr.Wrap(err, "failed to create sheets schema")
		}
	}

	return db, nil
}

// NewSQLiteRepository creates a sheet repository over an opened database
func NewSQLiteRepository(cfg *SQLiteRepoConfig) Repository {
	if cfg == nil {
		panic("SQLiteRepoConfig cannot be nil")
	}
	if cfg.DB == nil {
		panic("SQLite database cannot be nil")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = utcClock{}
	}

	return &sqliteRepo{
		db:           cfg.DB,
		timeProvider: timeProvider,
	}
}

// Create stores a new sheet
func (r *sqliteRepo) Create(ctx context.Context, s *sheet.Sheet) error {
	if err := validateSheet(s); err != nil {
		return err
	}

	now := r.timeProvider.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	doc, err := encodeSheet(s)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO sheets (id, owner_id, doc) VALUES (?, ?, ?)`, s.ID, s.OwnerID, string(doc))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return dnderr.AlreadyExistsf("sheet with ID '%s' already exists", s.ID).
				WithMeta("sheet_id", s.ID)
		}
		return dnderr.Wrap(err, "failed to create sheet")
	}

	return nil
}

// Get retrieves a sheet by ID
func (r *sqliteRepo) Get(ctx context.Context, id string) (*sheet.Sheet, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("sheet ID is required")
	}

	doc, err := r.load(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	return decodeSheet(doc)
}

// GetByOwner retrieves all sheets for a specific owner ordered by ID
func (r *sqliteRepo) GetByOwner(ctx context.Context, ownerID string) ([]*sheet.Sheet, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM sheets WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list sheets")
	}
	defer rows.Close()

	var result []*sheet.Sheet
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, dnderr.Wrap(err, "failed to scan sheet")
		}
		s, err := decodeSheet([]byte(doc))
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dnderr.Wrap(err, "failed to list sheets")
	}

	return result, nil
}

// Update replaces a stored sheet read at s.Revision
func (r *sqliteRepo) Update(ctx context.Context, s *sheet.Sheet) error {
	if err := validateSheet(s); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dnderr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stored, err := r.load(ctx, tx, s.ID)
	if err != nil {
		return err
	}
	if err := checkRevision(stored, s.ID, s.Revision); err != nil {
		return err
	}

	s.UpdatedAt = r.timeProvider.Now()
	s.Revision++

	doc, err := encodeSheet(s)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE sheets SET owner_id = ?, doc = ? WHERE id = ?`, s.OwnerID, string(doc), s.ID); err != nil {
		return dnderr.Wrap(err, "failed to update sheet")
	}

	if err := tx.Commit(); err != nil {
		return dnderr.Wrapf(err, "failed to commit sheet %s", s.ID)
	}

	return nil
}

// UpdateFields applies field updates inside a transaction
func (r *sqliteRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return dnderr.InvalidArgument("sheet ID is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dnderr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	doc, err := r.load(ctx, tx, id)
	if err != nil {
		return err
	}

	updated, err := ApplyFields(doc, fields, r.timeProvider.Now())
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE sheets SET doc = ? WHERE id = ?`, string(updated), id); err != nil {
		return dnderr.Wrapf(err, "failed to update sheet %s", id)
	}

	if err := tx.Commit(); err != nil {
		return dnderr.Wrapf(err, "failed to commit sheet %s", id)
	}

	return nil
}

// Delete removes a sheet
func (r *sqliteRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("sheet ID is required")
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM sheets WHERE id = ?`, id)
	if err != nil {
		return dnderr.Wrapf(err, "failed to delete sheet %s", id)
	}

	return requireAffected(res, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *sqliteRepo) load(ctx context.Context, q queryer, id string) ([]byte, error) {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT doc FROM sheets WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dnderr.NotFoundf("sheet with ID '%s' not found", id).
			WithMeta("sheet_id", id)
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get sheet %s", id)
	}
	return []byte(doc), nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return dnderr.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return dnderr.NotFoundf("sheet with ID '%s' not found", id).
			WithMeta("sheet_id", id)
	}
	return nil
}
