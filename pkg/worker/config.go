package worker

import "github.com/dmitrymomot/workersession/handler"

// Config holds worker pool configuration
type Config struct {
	// Workers is the number of persistent workers (default: 4)
	Workers int `env:"WORKER_COUNT" envDefault:"4" yaml:"count"`

	// MaxJobs recycles a worker's session state after that many requests (0 = never)
	MaxJobs uint64 `env:"WORKER_MAX_JOBS" envDefault:"0" yaml:"max_jobs"`
}

// NewFromConfig creates a Pool from the provided Config.
// Options passed explicitly override the values taken from cfg.
func NewFromConfig(h handler.Handler, factory Factory, cfg Config, opts ...Option) (*Pool, error) {
	configOpts := []Option{
		WithWorkers(cfg.Workers),
		WithMaxJobs(cfg.MaxJobs),
	}
	configOpts = append(configOpts, opts...)
	return New(h, factory, configOpts...)
}
