package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/dblibsync/internal/dblib"
	"github.com/JonMunkholm/dblibsync/internal/logging"
	"github.com/JonMunkholm/dblibsync/internal/schema"
	"github.com/JonMunkholm/dblibsync/internal/sheet"
	"github.com/JonMunkholm/dblibsync/internal/store"
)

// Source is the spreadsheet the library is synchronized from.
type Source interface {
	// Categories returns every tab in sheet order with its header row.
	Categories(ctx context.Context) ([]sheet.Tab, error)
	// Rows returns data rows 2 through rowCount of a tab.
	Rows(ctx context.Context, title string, rowCount int) ([][]string, error)
	// UpdateCell writes a value back; column is 0-based, row 1-based.
	UpdateCell(ctx context.Context, title string, column, row int, value string) error
}

// Options configures a Service.
type Options struct {
	// CustomRequired are display names every category must carry in
	// addition to the built-in required fields.
	CustomRequired []string

	// DbLibPath is where the generated DbLib file is written. Empty keeps the
	// file in memory only.
	DbLibPath string

	// Populators run on every component row before it is inserted.
	Populators []FieldPopulator

	// Timeout bounds a single sync run. Zero means no limit.
	Timeout time.Duration

	// MaxWait is how long a sync request waits for a running sync to finish.
	MaxWait time.Duration

	// NewID generates component IDs. Defaults to random UUIDs.
	NewID func() string
}

// Service runs schema syncs from a Source into a store.Store.
type Service struct {
	src     Source
	st      store.Store
	opts    Options
	limiter *SyncLimiter

	mu        sync.RWMutex
	last      *Result
	lastErr   error
	lastDbLib []byte
}

// NewService creates a sync service.
func NewService(src Source, st store.Store, opts Options) *Service {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Service{
		src:     src,
		st:      st,
		opts:    opts,
		limiter: NewSyncLimiter(opts.MaxWait),
	}
}

// Sync rebuilds the library database and DbLib file from the spreadsheet:
//
//  1. read every tab's name, row count and header row
//  2. validate all categories; any failure aborts before storage is touched
//  3. drop every table in the database
//  4. create one table per category
//  5. insert the component rows, assigning missing component IDs
//  6. build the DbLib file and write it to Options.DbLibPath
//
// Only one sync runs at a time; callers wait up to Options.MaxWait for a
// running sync and then get ErrSyncInProgress.
func (s *Service) Sync(ctx context.Context) (*Result, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	res := &Result{StartedAt: time.Now()}
	content, err := s.run(ctx, res)
	res.FinishedAt = time.Now()
	res.DurationMS = res.FinishedAt.Sub(res.StartedAt).Milliseconds()

	if err != nil {
		res.Error = err.Error()
	}

	s.mu.Lock()
	s.last = res
	s.lastErr = err
	if err == nil {
		s.lastDbLib = content
	}
	s.mu.Unlock()

	return res, err
}

func (s *Service) run(ctx context.Context, res *Result) ([]byte, error) {
	log := logging.FromContext(ctx)

	step := time.Now()
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	res.Categories = len(categories)
	log.Info("sync: read and validated categories", "step", "validate", "categories", len(categories), "duration_ms", time.Since(step).Milliseconds())

	step = time.Now()
	dropped, err := s.st.DropAllTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("drop library tables: %w", err)
	}
	res.TablesDropped = dropped
	log.Info("sync: dropped tables", "step", "drop", "tables", dropped, "duration_ms", time.Since(step).Milliseconds())

	step = time.Now()
	resolved := make([]*schema.ResolvedCategory, 0, len(categories))
	for _, c := range categories {
		stmt, r, err := c.CreateTableStatement(s.st.Dialect())
		if err != nil {
			return nil, fmt.Errorf("derive table %q: %w", c.Name, err)
		}
		if err := s.st.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create table %q: %w", c.Name, err)
		}
		resolved = append(resolved, r)
		log.Debug("sync: created table", "category", c.Name, "fields", len(r.Fields()), "links", r.LinkCount())
	}
	res.TablesCreated = len(resolved)
	log.Info("sync: created tables", "step", "create", "tables", len(resolved), "duration_ms", time.Since(step).Milliseconds())

	step = time.Now()
	for _, r := range resolved {
		inserted, newIDs, err := s.insertComponents(ctx, r)
		if err != nil {
			return nil, err
		}
		res.Components += inserted
		res.NewIDs += newIDs
		res.PerCategory = append(res.PerCategory, CategoryResult{Name: r.Name(), Components: inserted, NewIDs: newIDs})
	}
	log.Info("sync: inserted components", "step", "insert", "components", res.Components, "new_ids", res.NewIDs, "duration_ms", time.Since(step).Milliseconds())

	step = time.Now()
	left, right := s.st.Dialect().IdentQuotes()
	file := dblib.Build(resolved, s.st.ConnectionString(), dblib.WithQuotes(left, right))

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render dblib: %w", err)
	}
	if s.opts.DbLibPath != "" {
		if err := dblib.WriteFile(s.opts.DbLibPath, file); err != nil {
			return nil, fmt.Errorf("write dblib: %w", err)
		}
		res.DbLibPath = s.opts.DbLibPath
	}
	res.FieldMaps = len(file.Sections) - 2 - len(resolved)
	log.Info("sync: wrote dblib", "step", "dblib", "path", s.opts.DbLibPath, "field_maps", res.FieldMaps, "duration_ms", time.Since(step).Milliseconds())

	return buf.Bytes(), nil
}

// loadCategories reads every tab and validates the resulting categories.
func (s *Service) loadCategories(ctx context.Context) ([]*schema.Category, error) {
	tabs, err := s.src.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}

	categories := make([]*schema.Category, len(tabs))
	for i, t := range tabs {
		categories[i] = schema.NewCategoryFromHeaders(t.Title, t.RowCount, t.Headers)
	}

	if err := schema.ValidateAll(categories, s.opts.CustomRequired); err != nil {
		return nil, err
	}
	return categories, nil
}

// Validate reads and validates the spreadsheet without touching the
// database. The summaries are returned even when validation fails.
func (s *Service) Validate(ctx context.Context) ([]CategorySummary, error) {
	tabs, err := s.src.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}

	categories := make([]*schema.Category, len(tabs))
	summaries := make([]CategorySummary, len(tabs))
	for i, t := range tabs {
		c := schema.NewCategoryFromHeaders(t.Title, t.RowCount, t.Headers)
		categories[i] = c
		summaries[i] = CategorySummary{
			Name:   c.Name,
			Rows:   max(c.RowCount-1, 0),
			Fields: len(c.Fields()),
			Links:  c.LinkCount(),
		}
		if err := c.Validate(s.opts.CustomRequired); err != nil {
			summaries[i].Problems = problemList(err)
		}
	}

	return summaries, schema.ValidateAll(categories, s.opts.CustomRequired)
}

// problemList flattens a joined validation error into one line per problem.
func problemList(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, problemList(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

// LastResult returns the most recent sync result and its error, or nil if no
// sync has run.
func (s *Service) LastResult() (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.lastErr
}

// LastDbLib returns the DbLib content written by the last successful sync.
func (s *Service) LastDbLib() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastDbLib
}

// LimiterStatus reports whether a sync is running.
func (s *Service) LimiterStatus() SyncLimiterStatus {
	return s.limiter.Status()
}

// WaitForSync blocks until a running sync finishes or ctx is done.
func (s *Service) WaitForSync(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
