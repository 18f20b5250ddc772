package service

import (
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/allocation"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
	"github.com/subratasarker952/waitumusic-sub016/pkg/logger"
	"github.com/subratasarker952/waitumusic-sub016/pkg/metrics"
)

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

// WithMetrics records to m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithEngine replaces the default allocation engine.
func WithEngine(e *allocation.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithCapacity sets the number of physical mixer inputs.
func WithCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithTemplate sets the template used by requests without a mixer.
func WithTemplate(cfg model.MixerConfig) Option {
	return func(s *Service) {
		if len(cfg.Groups) > 0 {
			s.template = cfg
		}
	}
}

// WithTemplatePath loads the default template from a file on Start.
func WithTemplatePath(path string) Option {
	return func(s *Service) {
		s.templatePath = path
	}
}

// WithBatchConcurrency bounds how many batch requests run at once.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithMaxBatchSize caps the number of requests in one batch.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}
