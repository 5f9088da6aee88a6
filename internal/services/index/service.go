// Package index owns the shared search index for one vault and keeps it in
// sync with the markdown files on disk.
package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/quillnotes/quill/internal/cache"
	"github.com/quillnotes/quill/internal/note"
	"github.com/quillnotes/quill/internal/search"
)

// ErrClosed signals that the index service has been shut down.
var ErrClosed = errors.New("index service closed")

const resultCacheSize = 64

// Config controls how the vault is walked and queried.
type Config struct {
	// IgnoredFolders contains directory names skipped during indexing.
	IgnoredFolders []string
	// DefaultLimit caps result counts when a caller passes no limit.
	DefaultLimit int
}

// Match is one ranked search hit mapped back to its note.
type Match struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

// Stats combines index introspection with service lifecycle details.
type Stats struct {
	search.Stats
	Pending   int
	LastBuild time.Time
}

// Service wraps the search index behind a single lock, per the index's
// sequential-access contract, and coordinates incremental updates coming
// from the vault watcher. Note ids are vault-relative slash paths.
type Service struct {
	mu        sync.Mutex
	vault     string
	cfg       Config
	idx       *search.Index
	notes     map[string]*note.Note
	pending   map[string]struct{}
	results   *cache.LRU[string, []Match]
	gen       uint64
	lastBuild time.Time
	built     bool
	closed    bool

	now  func() time.Time
	load func(string) (*note.Note, error)
	stat func(string) (fs.FileInfo, error)
}

// NewService constructs a vault-scoped index service. The index is built
// lazily on first use; call Build to force it eagerly.
func NewService(vault string, cfg Config) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = search.DefaultLimit
	}
	return &Service{
		vault:   filepath.Clean(vault),
		cfg:     cfg,
		idx:     search.NewIndex(),
		notes:   make(map[string]*note.Note),
		pending: make(map[string]struct{}),
		results: cache.NewLRU[string, []Match](resultCacheSize),
		now:     time.Now,
		load:    note.Load,
		stat:    os.Stat,
	}
}

// Build replaces the index contents by walking the vault for markdown files.
func (s *Service) Build() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return s.rebuildLocked()
}

// QueueUpdate schedules a vault-relative path for incremental reindexing.
func (s *Service) QueueUpdate(rel string) {
	if s == nil {
		return
	}

	trimmed := strings.TrimSpace(rel)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.pending[filepath.ToSlash(trimmed)] = struct{}{}
}

// Update reindexes a single note identified by its vault-relative path.
func (s *Service) Update(rel string) error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return s.updateLocked(filepath.ToSlash(rel))
}

// Remove drops a note from the index. Unknown paths are ignored.
func (s *Service) Remove(rel string) error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.removeLocked(filepath.ToSlash(rel))
	return nil
}

// Search runs a ranked query and maps the resulting ids back to notes with
// display snippets. Results are memoized until the next index mutation.
func (s *Service) Search(term string, limit int) ([]Match, error) {
	if s == nil {
		return nil, ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if err := s.ensureFreshLocked(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	// The generation counter is part of the key, so entries from before a
	// mutation can never be served; they simply age out of the LRU.
	key := fmt.Sprintf("%d\x1f%d\x1f%s", s.gen, limit, term)
	if cached, ok := s.results.Get(key); ok {
		return append([]Match(nil), cached...), nil
	}

	ids := s.idx.Search(term, limit)
	matches := lo.Map(ids, func(id string, _ int) Match {
		return s.matchLocked(id, term)
	})

	s.results.Put(key, matches)
	return append([]Match(nil), matches...), nil
}

// Notes lists every indexed note sorted by path, for pickers that want the
// whole vault rather than a ranked subset.
func (s *Service) Notes() ([]Match, error) {
	if s == nil {
		return nil, ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if err := s.ensureFreshLocked(); err != nil {
		return nil, err
	}

	rels := lo.Keys(s.notes)
	sort.Strings(rels)

	matches := make([]Match, 0, len(rels))
	for _, rel := range rels {
		matches = append(matches, Match{Path: rel, Title: s.notes[rel].Title})
	}
	return matches, nil
}

// Note returns the loaded note behind a search hit.
func (s *Service) Note(rel string) (*note.Note, bool) {
	if s == nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[filepath.ToSlash(rel)]
	return n, ok
}

// Stats reports index statistics plus service lifecycle details.
func (s *Service) Stats() (Stats, error) {
	if s == nil {
		return Stats{}, ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Stats{}, ErrClosed
	}
	if err := s.ensureFreshLocked(); err != nil {
		return Stats{}, err
	}

	return Stats{
		Stats:     s.idx.Stats(),
		Pending:   len(s.pending),
		LastBuild: s.lastBuild,
	}, nil
}

// Close releases the service. Subsequent operations return ErrClosed.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.idx.Clear()
	s.notes = nil
	s.pending = nil
	return nil
}

func (s *Service) ensureFreshLocked() error {
	if !s.built {
		if err := s.rebuildLocked(); err != nil {
			return err
		}
	}
	return s.applyPendingLocked()
}

func (s *Service) rebuildLocked() error {
	rels, err := s.collectNotePaths()
	if err != nil {
		return fmt.Errorf("walk vault %s: %w", s.vault, err)
	}

	s.idx.Clear()
	s.notes = make(map[string]*note.Note, len(rels))
	for _, rel := range rels {
		if err := s.updateLocked(rel); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}

	s.built = true
	s.lastBuild = s.now()
	s.gen++
	return nil
}

func (s *Service) applyPendingLocked() error {
	if len(s.pending) == 0 {
		return nil
	}

	pending := s.pending
	s.pending = make(map[string]struct{})

	for rel := range pending {
		abs := filepath.Join(s.vault, filepath.FromSlash(rel))
		info, err := s.stat(abs)
		switch {
		case err == nil:
			if info.IsDir() {
				continue
			}
			if err := s.updateLocked(rel); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("update %s: %w", rel, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			s.removeLocked(rel)
		default:
			return fmt.Errorf("stat %s: %w", rel, err)
		}
	}

	return nil
}

func (s *Service) updateLocked(rel string) error {
	abs := filepath.Join(s.vault, filepath.FromSlash(rel))
	n, err := s.load(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.removeLocked(rel)
		}
		return err
	}

	// Add is upsert-safe, so edits need no explicit removal first.
	s.idx.Add(rel, n.SearchText(), n.Metadata())
	s.notes[rel] = n
	s.gen++
	return nil
}

func (s *Service) removeLocked(rel string) {
	if !s.idx.Has(rel) {
		return
	}
	s.idx.Remove(rel)
	delete(s.notes, rel)
	s.gen++
}

func (s *Service) matchLocked(id, term string) Match {
	m := Match{Path: id}
	n, ok := s.notes[id]
	if !ok {
		return m
	}
	m.Title = n.Title
	m.Snippet = snippet(n.Body, term)
	return m
}

func (s *Service) collectNotePaths() ([]string, error) {
	if s.vault == "" {
		return nil, errors.New("vault directory cannot be empty")
	}

	ignored := make(map[string]struct{}, len(s.cfg.IgnoredFolders))
	for _, dir := range s.cfg.IgnoredFolders {
		ignored[strings.ToLower(dir)] = struct{}{}
	}

	rels := make([]string, 0)
	err := filepath.WalkDir(s.vault, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := strings.ToLower(d.Name())
			if strings.HasPrefix(name, ".") && path != s.vault {
				return filepath.SkipDir
			}
			if _, skip := ignored[name]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(s.vault, path)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(rels)
	return rels, nil
}

// snippet extracts a display window around the first occurrence of term in
// body, collapsing line breaks so hits render on one line.
func snippet(body, term string) string {
	const window = 40

	flattened := strings.Join(strings.Fields(body), " ")
	lowered := strings.ToLower(flattened)
	needle := strings.ToLower(strings.TrimSpace(term))

	runes := []rune(flattened)
	start, end := 0, 0
	if idx := strings.Index(lowered, needle); needle != "" && idx >= 0 {
		start = utf8.RuneCountInString(lowered[:idx])
		end = start + utf8.RuneCountInString(needle)
	}

	snippetStart := start - window
	if snippetStart < 0 {
		snippetStart = 0
	}
	snippetEnd := end + window
	if snippetEnd > len(runes) {
		snippetEnd = len(runes)
	}

	out := strings.TrimSpace(string(runes[snippetStart:snippetEnd]))
	if snippetStart > 0 {
		out = "…" + out
	}
	if snippetEnd < len(runes) {
		out = out + "…"
	}
	return out
}

