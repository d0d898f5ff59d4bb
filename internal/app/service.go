// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/internal/adapters/directory"
	"github.com/cadencehq/cadence/internal/adapters/notify"
	"github.com/cadencehq/cadence/internal/adapters/repository"
	"github.com/cadencehq/cadence/internal/domain/calendar"
	"github.com/cadencehq/cadence/internal/domain/entry"
	"github.com/cadencehq/cadence/internal/domain/outstanding"
	"github.com/cadencehq/cadence/internal/domain/scoring"
	"github.com/cadencehq/cadence/internal/domain/submission"
	"github.com/cadencehq/cadence/internal/domain/team"
	"github.com/cadencehq/cadence/pkg/logger"
	"github.com/cadencehq/cadence/pkg/metrics"
)

const (
	defaultNotifyWorkers = 2
	defaultNotifyQueue   = 256
)

// ProjectSource yields the active project names for the entry form.
type ProjectSource interface {
	Projects(ctx context.Context) []string
}

// ActivityMap is one user's classified calendar for the current year.
type ActivityMap struct {
	Forecasts  []calendar.AnchorStatus
	Actuals    []calendar.AnchorStatus
	NextMonday time.Time
	LastFriday time.Time
}

// Service implements the API dependencies for the submission tracker.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	entries  repository.EntryStore
	nudges   repository.NudgeStore
	dir      directory.Directory
	projects ProjectSource
	sink     notify.Sink

	// Async notification delivery
	queue *notify.Queue
	pool  *notify.Pool

	// Scoring
	scorer      *scoring.Scorer
	scorerOpts  []scoring.Option
	workerCount int
	queueSize   int

	now func() time.Time

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEntryStore sets the entry store backend.
func WithEntryStore(store repository.EntryStore) Option {
	return func(s *Service) {
		if store != nil {
			s.entries = store
		}
	}
}

// WithNudgeStore sets the nudge store backend.
func WithNudgeStore(store repository.NudgeStore) Option {
	return func(s *Service) {
		if store != nil {
			s.nudges = store
		}
	}
}

// WithDirectory sets the people directory backend.
func WithDirectory(dir directory.Directory) Option {
	return func(s *Service) {
		if dir != nil {
			s.dir = dir
		}
	}
}

// WithProjectSource sets the active-project catalog.
func WithProjectSource(src ProjectSource) Option {
	return func(s *Service) {
		if src != nil {
			s.projects = src
		}
	}
}

// WithSink sets the notification delivery sink.
func WithSink(sink notify.Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithNotifyWorkers sets the number of notification delivery workers.
func WithNotifyWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithNotifyQueueSize bounds the notification queue.
func WithNotifyQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithScoringOptions forwards options to the compliance scorer.
func WithScoringOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.scorerOpts = append(s.scorerOpts, opts...)
	}
}

// WithClock overrides the service clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: defaultNotifyWorkers,
		queueSize:   defaultNotifyQueue,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the remaining components and launches the
// notification workers. Safe to call once at process start.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.entries == nil || s.nudges == nil {
		mem := repository.NewMemoryStore()
		if s.entries == nil {
			s.entries = mem
		}
		if s.nudges == nil {
			s.nudges = mem
		}
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.dir == nil {
		s.dir = directory.NewMemoryDirectory(nil)
	}
	if s.sink == nil {
		s.sink = notify.NewConsoleSink(s.logger.Named("notify"))
	}

	s.scorer = scoring.New(s.scorerOpts...)
	s.queue = notify.NewQueue(notify.WithCapacity(s.queueSize))
	s.pool = notify.NewPool(s.workerCount, s.queue, s.sink, s.logger.Named("notify"))
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.Int("notifyWorkers", s.workerCount),
		logger.Int("notifyQueueSize", s.queueSize),
	)
	return nil
}

// Stop drains the notification workers and closes the stores.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.pool != nil {
		s.pool.Stop()
	}
	if s.entries != nil {
		_ = s.entries.Close()
	}
	if closer, ok := s.nudges.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "service stopped")
}

// today truncates the service clock to a date.
func (s *Service) today() time.Time {
	return calendar.Day(s.now())
}

// ResolveUser resolves a directory username to a person.
func (s *Service) ResolveUser(ctx context.Context, username string) (directory.Person, error) {
	return s.dir.Lookup(ctx, username)
}

// Projects returns the active project names.
func (s *Service) Projects(ctx context.Context) []string {
	if s.projects == nil {
		return []string{}
	}
	return s.projects.Projects(ctx)
}

// buckets loads one kind of the owner's entries as a bucket index. Store
// failures degrade to an empty index with a warning; reads never fail.
func (s *Service) buckets(ctx context.Context, owner string, kind entry.Kind) entry.BucketIndex {
	owner = entry.NormalizeIdentity(owner)
	entries, err := s.entries.OwnerEntries(ctx, owner, kind)
	if err != nil {
		s.logger.Warn(ctx, "entry store read failed",
			logger.String("owner", owner),
			logger.String("kind", kind.String()),
			logger.Error(err),
		)
		entries = nil
	}
	return entry.NewBucketIndex(entries, kind)
}

// ActivityMap classifies every anchor of the current year for the owner.
func (s *Service) ActivityMap(ctx context.Context, owner string) ActivityMap {
	today := s.today()
	return ActivityMap{
		Forecasts:  calendar.ClassifyYear(today, entry.Forecast, s.buckets(ctx, owner, entry.Forecast)),
		Actuals:    calendar.ClassifyYear(today, entry.Actual, s.buckets(ctx, owner, entry.Actual)),
		NextMonday: calendar.NextMonday(today),
		LastFriday: calendar.LastFriday(today),
	}
}

// Outstanding returns the owner's prioritized action queue.
func (s *Service) Outstanding(ctx context.Context, owner string) []outstanding.Item {
	today := s.today()
	actuals := s.buckets(ctx, owner, entry.Actual)
	forecasts := s.buckets(ctx, owner, entry.Forecast)
	return outstanding.Resolve(today, actuals, forecasts)
}

// WeekEntries returns the rows of one (owner, kind, week) bucket. Store
// failures degrade to empty.
func (s *Service) WeekEntries(ctx context.Context, owner string, kind entry.Kind, week time.Time) []entry.Entry {
	owner = entry.NormalizeIdentity(owner)
	entries, err := s.entries.Week(ctx, owner, kind, week)
	if err != nil {
		s.logger.Warn(ctx, "entry store read failed",
			logger.String("owner", owner),
			logger.Error(err),
		)
		return []entry.Entry{}
	}
	return entries
}

// History returns the owner's most recently dated submitted week.
func (s *Service) History(ctx context.Context, owner string) []entry.Entry {
	owner = entry.NormalizeIdentity(owner)
	entries, err := s.entries.LatestWeek(ctx, owner)
	if err != nil {
		s.logger.Warn(ctx, "entry store read failed",
			logger.String("owner", owner),
			logger.Error(err),
		)
		return []entry.Entry{}
	}
	return entries
}

// SubmitWeek validates the submission window, filters the rows, and
// atomically replaces the week bucket. Returns the user-facing success
// message on acceptance.
func (s *Service) SubmitWeek(ctx context.Context, owner string, kind entry.Kind, week time.Time, rows []entry.Row) (string, error) {
	owner = entry.NormalizeIdentity(owner)
	today := s.today()
	week = calendar.Day(week)

	if err := submission.Validate(kind, week, today); err != nil {
		metrics.RecordSubmission(kind.String(), "rejected")
		return "", err
	}

	filtered := entry.FilterRows(rows)
	if dropped := len(rows) - len(filtered); dropped > 0 {
		metrics.RecordSubmissionRowsDropped(dropped)
	}

	if err := s.entries.ReplaceWeek(ctx, owner, kind, week, filtered); err != nil {
		metrics.RecordSubmission(kind.String(), "failed")
		s.logger.Error(ctx, "week replace failed",
			logger.String("owner", owner),
			logger.String("kind", kind.String()),
			logger.String("week", week.Format(time.DateOnly)),
			logger.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	metrics.RecordSubmission(kind.String(), "accepted")
	s.logger.Info(ctx, "week submitted",
		logger.String("owner", owner),
		logger.String("kind", kind.String()),
		logger.String("week", week.Format(time.DateOnly)),
		logger.Int("rows", len(filtered)),
	)
	return fmt.Sprintf("%s submitted successfully for week of %s", kindTitle(kind), week.Format(time.DateOnly)), nil
}

// MyScore computes the owner's compliance score as of today.
func (s *Service) MyScore(ctx context.Context, owner string) scoring.Result {
	return s.score(ctx, entry.NormalizeIdentity(owner), s.today())
}

func (s *Service) score(ctx context.Context, owner string, today time.Time) scoring.Result {
	start := time.Now()
	forecasts := s.buckets(ctx, owner, entry.Forecast)
	actuals := s.buckets(ctx, owner, entry.Actual)

	nudgeCount, err := s.nudges.CountSince(ctx, owner, s.scorer.NudgeWindowStart(today))
	if err != nil {
		s.logger.Warn(ctx, "nudge count failed",
			logger.String("owner", owner),
			logger.Error(err),
		)
		nudgeCount = 0
	}

	result := s.scorer.ScoreCounted(today, forecasts, actuals, nudgeCount)
	metrics.RecordScoreComputeDuration(float64(time.Since(start).Milliseconds()))
	return result
}

// TeamScores scores every direct report of every manager and ranks the
// resulting teams.
func (s *Service) TeamScores(ctx context.Context) ([]team.Entry, error) {
	managers, err := s.dir.Managers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	today := s.today()
	groups := make([]team.Group, 0, len(managers))
	for _, m := range managers {
		reports, err := s.dir.Reports(ctx, m.Email)
		if err != nil {
			s.logger.Warn(ctx, "reports lookup failed",
				logger.String("manager", m.Email),
				logger.Error(err),
			)
			continue
		}
		scores := make([]int, 0, len(reports))
		for _, r := range reports {
			scores = append(scores, s.score(ctx, r.Email, today).Score)
		}
		groups = append(groups, team.Group{
			ManagerEmail:     m.Email,
			ManagerFirstName: m.FirstName,
			MemberScores:     scores,
		})
	}
	return team.Aggregate(groups), nil
}

// SendNudge records a manager-to-report reminder and enqueues the
// notification email. The caller must be the recipient's manager.
func (s *Service) SendNudge(ctx context.Context, from directory.Person, toEmail string) error {
	toEmail = entry.NormalizeIdentity(toEmail)
	recipient, err := s.dir.ByEmail(ctx, toEmail)
	if err != nil {
		return ErrUnknownRecipient
	}
	if recipient.ManagerEmail == "" || recipient.ManagerEmail != entry.NormalizeIdentity(from.Email) {
		return ErrNotManager
	}

	message := fmt.Sprintf("%s has asked you to complete your outstanding submissions.", from.FirstName)
	n := repository.Nudge{
		ID:        uuid.NewString(),
		From:      entry.NormalizeIdentity(from.Email),
		To:        recipient.Email,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.nudges.Create(ctx, n); err != nil {
		return fmt.Errorf("create nudge: %w", err)
	}
	metrics.RecordNudgeCreated()

	// Best-effort: a full queue drops the email, never the nudge.
	if ok := s.queue.Enqueue(ctx, notify.Message{
		To:      recipient.Email,
		Subject: "Submission reminder",
		Body:    message,
	}); !ok {
		s.logger.Warn(ctx, "nudge email dropped",
			logger.String("to", recipient.Email),
		)
	}
	return nil
}

// Nudges returns the owner's undismissed nudges, newest first.
func (s *Service) Nudges(ctx context.Context, owner string) ([]repository.Nudge, error) {
	return s.nudges.Undismissed(ctx, entry.NormalizeIdentity(owner))
}

// DismissNudge marks one of the owner's nudges dismissed.
func (s *Service) DismissNudge(ctx context.Context, id, owner string) error {
	return s.nudges.Dismiss(ctx, id, entry.NormalizeIdentity(owner))
}

func kindTitle(k entry.Kind) string {
	switch k {
	case entry.Forecast:
		return "Forecast"
	case entry.Actual:
		return "Actuals"
	default:
		return "Submission"
	}
}
