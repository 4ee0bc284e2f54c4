package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/eringen/folio/migrations"
	"github.com/eringen/folio/publish"
	"github.com/eringen/folio/views"
)

// Store wraps the SQLite database holding backup snapshots and uploaded
// image metadata.
type Store struct {
	db        *sql.DB
	retention int
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations. Only the newest retention
// backups per repository are kept.
func NewStore(path string, retention int) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed during a write; busy_timeout makes writers
	// wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if err := migrations.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, retention: retention}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBackup stores a snapshot and prunes the repository's older ones.
func (s *Store) SaveBackup(ctx context.Context, b publish.Backup) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sq.Insert("backups").
		Columns("id", "repository", "created_at", "body").
		Values(b.ID, b.Repository, b.CreatedAt.UnixNano(), b.Body).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert backup: %w", err)
	}

	if s.retention > 0 {
		_, err = sq.Delete("backups").
			Where(sq.Eq{"repository": b.Repository}).
			Where(sq.Expr(
				"id NOT IN (SELECT id FROM backups WHERE repository = ? ORDER BY created_at DESC, rowid DESC LIMIT ?)",
				b.Repository, s.retention,
			)).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("prune backups: %w", err)
		}
	}
	return tx.Commit()
}

var backupColumns = []string{"id", "repository", "created_at", "body"}

func scanBackup(row sq.RowScanner) (publish.Backup, error) {
	var b publish.Backup
	var created int64
	if err := row.Scan(&b.ID, &b.Repository, &created, &b.Body); err != nil {
		return publish.Backup{}, err
	}
	b.CreatedAt = time.Unix(0, created).UTC()
	return b, nil
}

// LatestBackup returns the newest snapshot for repo.
func (s *Store) LatestBackup(ctx context.Context, repo string) (publish.Backup, bool, error) {
	row := sq.Select(backupColumns...).
		From("backups").
		Where(sq.Eq{"repository": repo}).
		OrderBy("created_at DESC", "rowid DESC").
		Limit(1).
		RunWith(s.db).
		QueryRowContext(ctx)
	b, err := scanBackup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return publish.Backup{}, false, nil
	}
	if err != nil {
		return publish.Backup{}, false, err
	}
	return b, true, nil
}

// ListBackups returns the snapshots for repo, newest first.
func (s *Store) ListBackups(ctx context.Context, repo string) ([]publish.Backup, error) {
	rows, err := sq.Select(backupColumns...).
		From("backups").
		Where(sq.Eq{"repository": repo}).
		OrderBy("created_at DESC", "rowid DESC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []publish.Backup
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SaveImage upserts uploaded image metadata.
func (s *Store) SaveImage(img views.Image) error {
	_, err := sq.Insert("images").
		Options("OR REPLACE").
		Columns("filename", "original_name", "width", "height", "size", "uploaded_at").
		Values(img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt).
		RunWith(s.db).
		Exec()
	return err
}

// ListImages returns all images, newest first.
func (s *Store) ListImages() ([]views.Image, error) {
	rows, err := sq.Select("filename", "original_name", "width", "height", "size", "uploaded_at").
		From("images").
		OrderBy("uploaded_at DESC", "filename").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []views.Image
	for rows.Next() {
		var img views.Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether filename is already recorded.
func (s *Store) ImageExists(filename string) (bool, error) {
	var n int
	err := sq.Select("COUNT(*)").
		From("images").
		Where(sq.Eq{"filename": filename}).
		RunWith(s.db).
		QueryRow().
		Scan(&n)
	return n > 0, err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := sq.Delete("images").
		Where(sq.Eq{"filename": filename}).
		RunWith(s.db).
		Exec()
	return err
}
