// Package publish pushes an edited document back to its GitHub repository.
//
// A save is a read-modify-write against the contents API: snapshot the
// document locally, fetch the current blob sha, then replace the file with
// that sha as precondition. There is no merge and no retry; a concurrent
// remote edit surfaces as a ConflictError and the local snapshot is kept.
package publish

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/folio/admin"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/github"
	"github.com/eringen/folio/logger"
)

const (
	DefaultPath    = "data.json"
	DefaultMessage = "Update via Admin Panel"
)

var (
	ErrSaveInProgress = errors.New("a save for this repository is already running")
	ErrNoBackup       = errors.New("no backup found")
)

// AuthError means the token was rejected or the file could not be read.
type AuthError struct {
	Repository string
	Err        error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Repository, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ConflictError means the file changed remotely since its sha was read.
type ConflictError struct {
	Repository string
	Err        error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s changed remotely: %v", e.Repository, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// Remote is the subset of the contents API a save needs.
type Remote interface {
	GetFile(ctx context.Context, token, repo, path string) (github.File, error)
	PutFile(ctx context.Context, token, repo, path string, in github.PutRequest) (github.PutResult, error)
}

// Backup is one local snapshot of a serialized document.
type Backup struct {
	ID         string
	Repository string
	CreatedAt  time.Time
	Body       []byte
}

// Backups stores snapshots. LatestBackup returns ok=false when the
// repository has none.
type Backups interface {
	SaveBackup(ctx context.Context, b Backup) error
	LatestBackup(ctx context.Context, repo string) (Backup, bool, error)
}

// Result describes a successful save.
type Result struct {
	BackupID  string
	SHA       string
	CommitSHA string
	Bytes     int
}

type Syncer struct {
	remote  Remote
	backups Backups
	path    string
	message string
	log     *logger.Logger
	now     func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

type Option func(*Syncer)

// WithPath sets the repository path of the content file.
func WithPath(p string) Option {
	return func(s *Syncer) {
		if p != "" {
			s.path = p
		}
	}
}

// WithMessage sets the commit message.
func WithMessage(m string) Option {
	return func(s *Syncer) {
		if m != "" {
			s.message = m
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Syncer) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Syncer) { s.now = now }
}

func NewSyncer(remote Remote, backups Backups, opts ...Option) *Syncer {
	s := &Syncer{
		remote:   remote,
		backups:  backups,
		path:     DefaultPath,
		message:  DefaultMessage,
		log:      logger.Nop(),
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Syncer) acquire(repo string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[repo]; busy {
		return false
	}
	s.inFlight[repo] = struct{}{}
	return true
}

func (s *Syncer) release(repo string) {
	s.mu.Lock()
	delete(s.inFlight, repo)
	s.mu.Unlock()
}

// Save snapshots doc, then replaces the remote file with it.
// The snapshot is written first and is kept whatever the outcome.
func (s *Syncer) Save(ctx context.Context, cred admin.Credential, doc *content.Document) (Result, error) {
	if !s.acquire(cred.Repository) {
		return Result{}, ErrSaveInProgress
	}
	defer s.release(cred.Repository)

	body, err := content.Encode(doc)
	if err != nil {
		return Result{}, fmt.Errorf("encode document: %w", err)
	}

	backup := Backup{
		ID:         uuid.NewString(),
		Repository: cred.Repository,
		CreatedAt:  s.now(),
		Body:       body,
	}
	if err := s.backups.SaveBackup(ctx, backup); err != nil {
		return Result{}, fmt.Errorf("write backup: %w", err)
	}

	log := s.log.With("repo", cred.Repository)

	cur, err := s.remote.GetFile(ctx, cred.Token, cred.Repository, s.path)
	if err != nil {
		log.Warn().Err(err).Str("backup", backup.ID).Msg("read before save failed")
		return Result{}, &AuthError{Repository: cred.Repository, Err: err}
	}

	put, err := s.remote.PutFile(ctx, cred.Token, cred.Repository, s.path, github.PutRequest{
		Message: s.message,
		Content: body,
		SHA:     cur.SHA,
	})
	switch {
	case errors.Is(err, github.ErrConflict):
		log.Warn().Err(err).Str("sha", cur.SHA).Msg("save conflict")
		return Result{}, &ConflictError{Repository: cred.Repository, Err: err}
	case errors.Is(err, github.ErrUnauthorized):
		log.Warn().Err(err).Msg("save rejected")
		return Result{}, &AuthError{Repository: cred.Repository, Err: err}
	case err != nil:
		log.Error().Err(err).Msg("save failed")
		return Result{}, fmt.Errorf("save %s: %w", cred.Repository, err)
	}

	log.Info().Str("commit", put.CommitSHA).Int("bytes", len(body)).Msg("saved")
	return Result{BackupID: backup.ID, SHA: put.SHA, CommitSHA: put.CommitSHA, Bytes: len(body)}, nil
}

// Restore returns the newest local snapshot for repo. Nothing is pushed.
func (s *Syncer) Restore(ctx context.Context, repo string) (*content.Document, error) {
	b, ok, err := s.backups.LatestBackup(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if !ok {
		return nil, ErrNoBackup
	}
	doc, err := content.Parse(b.Body)
	if err != nil {
		return nil, fmt.Errorf("parse backup %s: %w", b.ID, err)
	}
	return doc, nil
}
