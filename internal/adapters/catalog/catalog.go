// Package catalog loads the active project list from a CSV file.
//
// Expected columns: ProjectName, Active. Only rows whose Active column
// parses as true are kept; names come back sorted. A missing file yields
// an empty list with a warning, never an error.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cadencehq/cadence/pkg/logger"
)

const defaultReloadInterval = 5 * time.Minute

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithReloadInterval sets how often the CSV file is re-read.
func WithReloadInterval(d time.Duration) Option {
	return func(c *Catalog) {
		if d > 0 {
			c.reloadInterval = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// Catalog serves the active project names backing the entry form.
type Catalog struct {
	mu             sync.RWMutex
	path           string
	projects       []string
	reloadInterval time.Duration
	logger         logger.Logger
}

// New creates a Catalog over the CSV file at path and performs the
// initial load.
func New(ctx context.Context, path string, opts ...Option) *Catalog {
	c := &Catalog{
		path:           path,
		reloadInterval: defaultReloadInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("catalog")
	}
	c.Reload(ctx)
	return c
}

// Projects returns the active project names, sorted.
func (c *Catalog) Projects(_ context.Context) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.projects...)
}

// Reload re-reads the CSV file. Parse failures keep the previous list.
func (c *Catalog) Reload(ctx context.Context) {
	projects, err := load(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Warn(ctx, "project catalog file not found; serving empty list",
				logger.String("path", c.path))
			c.mu.Lock()
			c.projects = nil
			c.mu.Unlock()
			return
		}
		c.logger.Error(ctx, "reloading project catalog; keeping previous list",
			logger.String("path", c.path), logger.Error(err))
		return
	}
	c.mu.Lock()
	c.projects = projects
	c.mu.Unlock()
}

// Start reloads the catalog on the configured interval until ctx is done.
func (c *Catalog) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.reloadInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Reload(ctx)
			}
		}
	}()
}

func load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	nameCol, activeCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "ProjectName":
			nameCol = i
		case "Active":
			activeCol = i
		}
	}
	if nameCol < 0 || activeCol < 0 {
		return nil, fmt.Errorf("catalog header missing ProjectName or Active column: %v", header)
	}

	var projects []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		if len(record) <= nameCol || len(record) <= activeCol {
			continue
		}
		active, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(record[activeCol])))
		if err != nil || !active {
			continue
		}
		name := strings.TrimSpace(record[nameCol])
		if name != "" {
			projects = append(projects, name)
		}
	}
	sort.Strings(projects)
	return projects, nil
}
