// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the stage plot CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/subratasarker952/waitumusic-sub016/internal/adapters/templatefile"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/allocation"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/mixer"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/stageplot"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/talent"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/types"
	"github.com/subratasarker952/waitumusic-sub016/pkg/logger"
	"github.com/subratasarker952/waitumusic-sub016/pkg/metrics"
)

// Service runs the normalize, resolve, allocate and render pipeline for
// booking requests.
type Service struct {
	mu sync.RWMutex

	// Core components
	normalizer *talent.Normalizer
	engine     *allocation.Engine
	metrics    *metrics.Manager

	// Configuration
	capacity         int
	template         model.MixerConfig
	templatePath     string
	batchConcurrency int
	maxBatchSize     int

	// State
	started     bool
	allocations atomic.Int64
	failures    atomic.Int64

	// Logging
	logger  logger.Logger
	logOnce sync.Once
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		normalizer:       talent.New(),
		engine:           allocation.New(),
		metrics:          metrics.Global(),
		capacity:         stageplot.DefaultCapacity,
		template:         mixer.Default(),
		batchConcurrency: runtime.NumCPU(),
		maxBatchSize:     100,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the configured template file, if any.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	log := s.log()
	if s.templatePath != "" {
		cfg, err := templatefile.Load(s.templatePath)
		if err != nil {
			return fmt.Errorf("default template: %w", err)
		}
		s.template = cfg
		log.Info(ctx, "loaded mixer template",
			logger.String("path", s.templatePath),
			logger.String("template", cfg.Name),
		)
	}

	s.started = true
	log.Info(ctx, "channel allocation service started",
		logger.String("template", s.template.Name),
		logger.Int("capacity", s.capacity),
		logger.Int("batchConcurrency", s.batchConcurrency),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.log().Info(context.Background(), "channel allocation service stopped")
}

// Template returns the template used for requests without a mixer.
func (s *Service) Template() model.MixerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// Allocate runs one request. Data shortfalls are reported in the response;
// errors are a malformed template (a *model.ConfigurationError), a broken
// engine invariant, or a done context.
func (s *Service) Allocate(ctx context.Context, req types.AllocationRequest) (types.AllocationResponse, error) {
	if err := ctx.Err(); err != nil {
		return types.AllocationResponse{}, err
	}

	cfg := s.Template()
	if req.Mixer != nil {
		cfg = *req.Mixer
	}

	requestID := uuid.NewString()
	log := s.log().With(
		logger.String("requestId", requestID),
		logger.String("bookingId", req.BookingID),
	)

	start := time.Now()
	resp, err := s.run(req, cfg)
	elapsed := time.Since(start)
	ms := float64(elapsed.Microseconds()) / 1000

	s.allocations.Add(1)
	if err != nil {
		s.failures.Add(1)
		outcome := metrics.OutcomeError
		if model.IsConfigurationError(err) {
			outcome = metrics.OutcomeConfigError
			log.Warn(ctx, "rejected mixer template", logger.Error(err))
		} else {
			log.Error(ctx, "allocation failed", logger.Error(err))
		}
		_ = s.metrics.RecordAllocation(outcome, ms)
		return types.AllocationResponse{}, err
	}

	resp.RequestID = requestID
	_ = s.metrics.RecordAllocation(metrics.OutcomeOK, ms)
	s.metrics.RecordShortfall(
		len(resp.Result.Channels)-len(resp.Result.UnfilledSlots),
		unfilledFamilies(resp.Result.UnfilledSlots),
		len(resp.Result.UnassignedPeople),
		len(resp.Excluded),
	)

	log.Info(ctx, "allocation complete",
		logger.String("template", resp.Template),
		logger.Int("people", len(req.Assignments)),
		logger.Int("channels", len(resp.Result.Channels)),
		logger.Int("unfilled", len(resp.Result.UnfilledSlots)),
		logger.Int("unassigned", len(resp.Result.UnassignedPeople)),
		logger.Int("excluded", len(resp.Excluded)),
		logger.Duration("elapsed", elapsed),
	)
	return resp, nil
}

func (s *Service) run(req types.AllocationRequest, cfg model.MixerConfig) (types.AllocationResponse, error) {
	if len(cfg.Groups) == 0 {
		return types.AllocationResponse{}, &model.ConfigurationError{
			Op:  "service.allocate",
			Err: fmt.Errorf("%w: mixer has no groups", model.ErrInvalidTemplate),
		}
	}

	rep := s.normalizer.Normalize(req.Assignments)

	slots, err := mixer.Resolve(cfg)
	if err != nil {
		return types.AllocationResponse{}, err
	}

	res, err := s.engine.Allocate(rep.Roster, slots)
	if err != nil {
		return types.AllocationResponse{}, err
	}

	excluded := rep.Excluded
	if excluded == nil {
		excluded = []model.Exclusion{}
	}

	return types.AllocationResponse{
		BookingID: req.BookingID,
		Template:  cfg.Name,
		Result:    res,
		Excluded:  excluded,
		InputList: stageplot.Build(res,
			stageplot.WithCapacity(s.capacity),
			stageplot.WithTemplate(slots),
			stageplot.WithExclusions(excluded),
		),
	}, nil
}

// AllocateBatch runs independent requests concurrently. Items are returned in
// request order; a failed request is reported on its item and does not stop
// the others. The call fails as a whole only when ctx is done.
func (s *Service) AllocateBatch(ctx context.Context, reqs []types.AllocationRequest) ([]types.BatchItem, error) {
	switch {
	case len(reqs) == 0:
		return nil, ErrEmptyBatch
	case len(reqs) > s.maxBatchSize:
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(reqs), s.maxBatchSize)
	}
	s.metrics.ObserveBatchSize(len(reqs))

	items := make([]types.BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	for i, req := range reqs {
		g.Go(func() error {
			resp, err := s.Allocate(gctx, req)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				items[i] = types.BatchItem{BookingID: req.BookingID, Error: err.Error()}
				return nil
			}
			items[i] = types.BatchItem{BookingID: req.BookingID, Response: &resp}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":          s.started,
		"template":         s.template.Name,
		"capacity":         s.capacity,
		"batchConcurrency": s.batchConcurrency,
		"maxBatchSize":     s.maxBatchSize,
		"singleFamilies":   familyNames(s.engine.SingleFamilyOrder()),
		"allocations":      s.allocations.Load(),
		"failures":         s.failures.Load(),
	}
}

// log falls back to the global logger on first use when WithLogger was not given.
func (s *Service) log() logger.Logger {
	s.logOnce.Do(func() {
		if s.logger == nil {
			s.logger = logger.Named("service")
		}
	})
	return s.logger
}

func unfilledFamilies(slots []model.ChannelSlot) []string {
	out := make([]string, 0, len(slots))
	for _, sl := range slots {
		out = append(out, sl.Family.String())
	}
	return out
}

func familyNames(fams []model.Family) []string {
	out := make([]string, 0, len(fams))
	for _, f := range fams {
		out = append(out, f.String())
	}
	return out
}
