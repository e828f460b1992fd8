package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/examboard/examboard-api/internal/dto"
	"github.com/examboard/examboard-api/internal/models"
	"github.com/examboard/examboard-api/internal/projection"
	appErrors "github.com/examboard/examboard-api/pkg/errors"
)

// ScheduleServiceConfig governs result retention and view caching.
type ScheduleServiceConfig struct {
	ResultTTL time.Duration
	CacheTTL  time.Duration
}

// ScheduleService ingests backend schedule results, runs the projection once,
// and serves the derived views from an in-memory store.
type ScheduleService struct {
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	validator *validator.Validate
	store     *resultStore
	cacheTTL  time.Duration
}

// NewScheduleService wires the projection pipeline dependencies.
func NewScheduleService(cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg ScheduleServiceConfig) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 2 * time.Hour
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &ScheduleService{
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		validator: validator.New(),
		store:     newResultStore(cfg.ResultTTL),
		cacheTTL:  cfg.CacheTTL,
	}
}

// Load ingests a schedule result, derives every view, and returns the handle
// clients use for subsequent reads.
func (s *ScheduleService) Load(ctx context.Context, payload models.ScheduleResult) (*dto.LoadScheduleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule result payload")
	}

	start := time.Now()
	analysis := projection.Classify(payload.Conflicts.Breakdown, payload.Schedule.Complete, payload.Summary)
	s.observe("classify", start)

	start = time.Now()
	rows := projection.BuildRows(payload.Schedule.Calendar, analysis)
	exams := projection.FlattenExams(rows)
	s.observe("grid", start)

	start = time.Now()
	thresholds := projection.ComputeThresholds(projection.CellCounts(rows))
	metrics := projection.ComputeMetrics(rows, payload.Schedule.Complete, payload.Summary, payload.Dataset, analysis)
	s.observe("aggregate", start)

	view := &loadedSchedule{
		ID:         uuid.NewString(),
		LoadedAt:   s.store.now().UTC(),
		Result:     payload,
		Analysis:   analysis,
		Rows:       rows,
		Exams:      exams,
		Thresholds: thresholds,
		Metrics:    metrics,
	}
	s.store.Save(view)
	if s.metrics != nil {
		s.metrics.RecordScheduleLoaded(s.store.Len())
	}
	s.logger.Info("schedule result loaded",
		zap.String("scheduleId", view.ID),
		zap.Int("exams", len(exams)),
		zap.Int("conflicts", payload.Summary.RealConflicts),
		zap.Bool("detailMissing", analysis.DetailMissing),
	)

	return &dto.LoadScheduleResponse{
		ScheduleID:    view.ID,
		LoadedAt:      view.LoadedAt,
		ExpiresAt:     view.LoadedAt.Add(s.store.ttl),
		Metrics:       metrics,
		DetailMissing: analysis.DetailMissing,
	}, nil
}

// Grid returns the weekly calendar rows for a loaded schedule.
func (s *ScheduleService) Grid(ctx context.Context, id string) (*dto.GridResponse, bool, error) {
	key := viewKey(id, "grid")
	var cached dto.GridResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	view, err := s.view(id)
	if err != nil {
		return nil, false, err
	}
	resp := &dto.GridResponse{ScheduleID: id, Rows: view.Rows}
	_ = s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, false, nil
}

// Density returns bucketed heat-map levels for every grid cell.
func (s *ScheduleService) Density(ctx context.Context, id string) (*dto.DensityResponse, bool, error) {
	key := viewKey(id, "density")
	var cached dto.DensityResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	view, err := s.view(id)
	if err != nil {
		return nil, false, err
	}
	cells := make([]dto.DensityCell, 0, len(view.Rows)*len(projection.WeekDays))
	for _, row := range view.Rows {
		for _, cell := range row.Cells {
			cells = append(cells, dto.DensityCell{
				Day:      cell.Day,
				TimeSlot: row.TimeSlot,
				Count:    cell.ExamCount,
				Level:    view.Thresholds.Level(cell.ExamCount),
			})
		}
	}
	resp := &dto.DensityResponse{ScheduleID: id, Thresholds: view.Thresholds, Cells: cells}
	_ = s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, false, nil
}

// Stats returns the aggregate metrics for summary cards.
func (s *ScheduleService) Stats(ctx context.Context, id string) (*dto.StatsResponse, bool, error) {
	key := viewKey(id, "stats")
	var cached dto.StatsResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	view, err := s.view(id)
	if err != nil {
		return nil, false, err
	}
	resp := &dto.StatsResponse{ScheduleID: id, Metrics: view.Metrics}
	_ = s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, false, nil
}

// Conflicts returns the per-kind conflict tables.
func (s *ScheduleService) Conflicts(ctx context.Context, id string) (*dto.ConflictReportResponse, bool, error) {
	key := viewKey(id, "conflicts")
	var cached dto.ConflictReportResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	view, err := s.view(id)
	if err != nil {
		return nil, false, err
	}
	resp := &dto.ConflictReportResponse{
		ScheduleID:    id,
		Total:         view.Result.Summary.RealConflicts,
		ByKind:        view.Analysis.ByKind,
		Totals:        view.Analysis.Totals,
		DetailMissing: view.Analysis.DetailMissing,
	}
	_ = s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, false, nil
}

// Exams returns the flattened exam list with optional filters applied.
// Filtered reads bypass the cache because the filter space is unbounded.
func (s *ScheduleService) Exams(ctx context.Context, id string, query dto.ExamListQuery) (*dto.ExamListResponse, bool, error) {
	view, err := s.view(id)
	if err != nil {
		return nil, false, err
	}
	filtered := projection.FilterExams(view.Exams, projection.ExamFilter{
		Search:        query.Search,
		Department:    query.Department,
		ConflictsOnly: query.ConflictsOnly,
	})
	return &dto.ExamListResponse{ScheduleID: id, Exams: filtered, Total: len(filtered)}, false, nil
}

// Drop discards a loaded schedule and invalidates its cached views.
func (s *ScheduleService) Drop(ctx context.Context, id string) error {
	if _, err := s.view(id); err != nil {
		return err
	}
	s.store.Delete(id)
	_ = s.cache.Invalidate(ctx, viewKey(id, "*"))
	if s.metrics != nil {
		s.metrics.RecordScheduleEvicted(s.store.Len())
	}
	return nil
}

func (s *ScheduleService) view(id string) (*loadedSchedule, error) {
	view, ok, expired := s.store.Get(id)
	if expired {
		if s.metrics != nil {
			s.metrics.RecordScheduleEvicted(s.store.Len())
		}
		return nil, appErrors.Clone(appErrors.ErrResultExpired, fmt.Sprintf("schedule result %s has expired", id))
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule result %s not found", id))
	}
	return view, nil
}

func (s *ScheduleService) observe(stage string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveProjection(stage, time.Since(start))
	}
}

func viewKey(id, view string) string {
	return fmt.Sprintf("schedule:%s:%s", id, view)
}

type loadedSchedule struct {
	ID         string
	LoadedAt   time.Time
	Result     models.ScheduleResult
	Analysis   *projection.ConflictAnalysis
	Rows       []models.CalendarRow
	Exams      []models.Exam
	Thresholds projection.DensityThresholds
	Metrics    models.ScheduleMetrics
}

type resultStore struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	items map[string]*loadedSchedule
	// Tombstones let a recently expired id answer with an expiry error
	// rather than pretending the result never existed.
	tombstones map[string]time.Time
}

func newResultStore(ttl time.Duration) *resultStore {
	return &resultStore{
		ttl:        ttl,
		now:        time.Now,
		items:      make(map[string]*loadedSchedule),
		tombstones: make(map[string]time.Time),
	}
}

func (s *resultStore) Save(view *loadedSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[view.ID] = view
	delete(s.tombstones, view.ID)
	s.pruneLocked()
}

func (s *resultStore) Get(id string) (*loadedSchedule, bool, bool) {
	s.mu.RLock()
	view, ok := s.items[id]
	_, gone := s.tombstones[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false, gone
	}
	if s.now().Sub(view.LoadedAt) > s.ttl {
		s.expire(id)
		return nil, false, true
	}
	return view, true, false
}

func (s *resultStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	delete(s.tombstones, id)
	s.mu.Unlock()
}

func (s *resultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *resultStore) expire(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.tombstones[id] = s.now()
	s.mu.Unlock()
}

// pruneLocked drops stale entries and tombstones older than one retention
// period. Callers must hold the write lock.
func (s *resultStore) pruneLocked() {
	cutoff := s.now()
	for id, view := range s.items {
		if cutoff.Sub(view.LoadedAt) > s.ttl {
			delete(s.items, id)
			s.tombstones[id] = cutoff
		}
	}
	for id, at := range s.tombstones {
		if cutoff.Sub(at) > s.ttl {
			delete(s.tombstones, id)
		}
	}
}
