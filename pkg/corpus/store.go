package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SetupSchema initializes the corpus tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaCorpora = `
CREATE TABLE IF NOT EXISTS corpora (
    corpus_id INTEGER PRIMARY KEY,
    corpus_name TEXT NOT NULL UNIQUE
);
`
		schemaEntries = `
CREATE TABLE IF NOT EXISTS corpus_entries (
    entry_id INTEGER PRIMARY KEY,
    corpus_id INTEGER NOT NULL,
    entry_text TEXT NOT NULL,
    occurrences INTEGER NOT NULL DEFAULT 1,
    UNIQUE (corpus_id, entry_text)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaCorpora); err != nil {
		return fmt.Errorf("could not create corpora schema: %w", err)
	}

	if _, err = tx.Exec(schemaEntries); err != nil {
		return fmt.Errorf("could not create entries schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Info identifies a corpus.
type Info struct {
	Id   int
	Name string
}

// Stats holds aggregated statistics for every corpus in the database.
type Stats struct {
	Corpora []Info              // All corpora, ordered by id
	Entries map[int]CorpusStats // A mapping of corpus ids to their stats
}

// CorpusStats holds statistics for a single corpus.
type CorpusStats struct {
	DistinctEntries  int // The number of unique entries.
	TotalOccurrences int // The number of entries including repeats.
}

// Store reads and writes corpora. It holds the database connection, a
// tokenizer for Ingest, and prepared statements.
type Store struct {
	db                *sql.DB
	tokenizer         *Tokenizer
	stmtGetCorpusInfo *sql.Stmt
	stmtGetCorpora    *sql.Stmt
	stmtAddCorpus     *sql.Stmt
	stmtAddEntry      *sql.Stmt
	stmtGetEntries    *sql.Stmt
	stmtCorpusStats   *sql.Stmt
	logger            *slog.Logger
}

// NewStore creates a Store. A nil tokenizer selects NewTokenizer().
func NewStore(db *sql.DB, tokenizer *Tokenizer) (*Store, error) {
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}

	stmtGetCorpusInfo, err := db.Prepare(`SELECT corpus_id FROM corpora WHERE corpus_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtGetCorpora, err := db.Prepare(`SELECT corpus_id, corpus_name FROM corpora ORDER BY corpus_id;`)
	if err != nil {
		return nil, err
	}

	stmtAddCorpus, err := db.Prepare(`INSERT INTO corpora (corpus_name) VALUES (?);`)
	if err != nil {
		return nil, err
	}

	stmtAddEntry, err := db.Prepare(`INSERT INTO corpus_entries (corpus_id, entry_text) VALUES (?, ?) ON CONFLICT(corpus_id, entry_text) DO UPDATE SET occurrences = occurrences + 1;`)
	if err != nil {
		return nil, err
	}

	stmtGetEntries, err := db.Prepare(`SELECT entry_text, occurrences FROM corpus_entries WHERE corpus_id = ? ORDER BY entry_id;`)
	if err != nil {
		return nil, err
	}

	stmtCorpusStats, err := db.Prepare(`SELECT COUNT(*), coalesce(SUM(occurrences), 0) FROM corpus_entries WHERE corpus_id = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:                db,
		tokenizer:         tokenizer,
		stmtGetCorpusInfo: stmtGetCorpusInfo,
		stmtGetCorpora:    stmtGetCorpora,
		stmtAddCorpus:     stmtAddCorpus,
		stmtAddEntry:      stmtAddEntry,
		stmtGetEntries:    stmtGetEntries,
		stmtCorpusStats:   stmtCorpusStats,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtGetCorpusInfo.Close()
	_ = s.stmtGetCorpora.Close()
	_ = s.stmtAddCorpus.Close()
	_ = s.stmtAddEntry.Close()
	_ = s.stmtGetEntries.Close()
	_ = s.stmtCorpusStats.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// CreateCorpus adds an empty corpus. Names are unique.
func (s *Store) CreateCorpus(ctx context.Context, name string) (Info, error) {
	res, err := s.stmtAddCorpus.ExecContext(ctx, name)
	if err != nil {
		return Info{}, fmt.Errorf("could not create corpus '%s': %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Info{}, err
	}
	return Info{Id: int(id), Name: name}, nil
}

// GetCorpusInfo looks up a corpus by name. It returns sql.ErrNoRows if the
// corpus does not exist.
func (s *Store) GetCorpusInfo(ctx context.Context, name string) (Info, error) {
	var id int
	if err := s.stmtGetCorpusInfo.QueryRowContext(ctx, name).Scan(&id); err != nil {
		return Info{}, err
	}
	return Info{Id: id, Name: name}, nil
}

// GetOrCreateCorpus returns the named corpus, creating it if needed.
func (s *Store) GetOrCreateCorpus(ctx context.Context, name string) (Info, error) {
	info, err := s.GetCorpusInfo(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return s.CreateCorpus(ctx, name)
	}
	return info, err
}

// GetCorpusInfos returns every corpus keyed by name.
func (s *Store) GetCorpusInfos(ctx context.Context) (map[string]Info, error) {
	list, err := s.listCorpora(ctx)
	if err != nil {
		return nil, err
	}
	infos := make(map[string]Info, len(list))
	for _, info := range list {
		infos[info.Name] = info
	}
	return infos, nil
}

func (s *Store) listCorpora(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtGetCorpora.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []Info
	for rows.Next() {
		var info Info
		if err = rows.Scan(&info.Id, &info.Name); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// RemoveCorpus deletes a corpus and all of its entries in one transaction.
func (s *Store) RemoveCorpus(ctx context.Context, info Info) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM corpus_entries WHERE corpus_id = ?", info.Id); err != nil {
		return fmt.Errorf("failed to remove entries for corpus %d: %w", info.Id, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM corpora WHERE corpus_id = ?", info.Id); err != nil {
		return fmt.Errorf("failed to remove corpus %d: %w", info.Id, err)
	}

	s.logger.InfoContext(ctx, "Corpus removed successfully",
		slog.String("corpus_name", info.Name),
		slog.Int("corpus_id", info.Id),
	)

	return tx.Commit()
}

// AddEntries adds entries to a corpus in one transaction and returns how many
// were added. Blank entries are skipped; an entry already present has its
// occurrence count incremented.
func (s *Store) AddEntries(ctx context.Context, info Info, entries []string) (int, error) {
	i := 0
	next := func() (string, error) {
		for i < len(entries) {
			entry := strings.TrimSpace(entries[i])
			i++
			if entry != "" {
				return entry, nil
			}
		}
		return "", io.EOF
	}
	return s.insertEntries(ctx, info, next)
}

// Ingest tokenizes r with the Store's tokenizer and adds every word to the
// corpus in one transaction. It returns how many words were added.
func (s *Store) Ingest(ctx context.Context, info Info, r io.Reader) (int, error) {
	stream := s.tokenizer.NewStream(r)
	return s.insertEntries(ctx, info, stream.Next)
}

func (s *Store) insertEntries(ctx context.Context, info Info, next func() (string, error)) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	stmtAddEntry := tx.StmtContext(ctx, s.stmtAddEntry)

	added := 0
	for {
		entry, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("tokenizer error: %w", err)
		}
		if _, err = stmtAddEntry.ExecContext(ctx, info.Id, entry); err != nil {
			return 0, fmt.Errorf("failed to add entry '%s': %w", entry, err)
		}
		added++
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "Entries added",
		slog.String("corpus_name", info.Name),
		slog.Int("corpus_id", info.Id),
		slog.Int("entries_added", added),
	)
	return added, nil
}

// Entries returns the corpus contents in insertion order, each entry repeated
// by its occurrence count.
func (s *Store) Entries(ctx context.Context, info Info) ([]string, error) {
	rows, err := s.stmtGetEntries.QueryContext(ctx, info.Id)
	if err != nil {
		return nil, fmt.Errorf("could not query entries for corpus %d: %w", info.Id, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var entries []string
	for rows.Next() {
		var text string
		var occurrences int
		if err = rows.Scan(&text, &occurrences); err != nil {
			return nil, err
		}
		for range occurrences {
			entries = append(entries, text)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetStats returns a snapshot of statistics for every corpus.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	infos, err := s.listCorpora(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Corpora: make([]Info, 0, len(infos)),
		Entries: make(map[int]CorpusStats, len(infos)),
	}
	for _, info := range infos {
		var cs CorpusStats
		if err = s.stmtCorpusStats.QueryRowContext(ctx, info.Id).Scan(&cs.DistinctEntries, &cs.TotalOccurrences); err != nil {
			return nil, err
		}
		stats.Corpora = append(stats.Corpora, info)
		stats.Entries[info.Id] = cs
	}
	return stats, nil
}
