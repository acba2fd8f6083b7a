package vm

import (
	"runtime"
	"time"

	"github.com/tliron/commonlog"
)

// Option configures an Engine at construction time.
type Option func(*settings)

type settings struct {
	logger       commonlog.Logger
	trace        bool
	clock        func() time.Time
	heapSize     int
	stackSize    int
	logicalCores int
}

func defaultSettings() settings {
	return settings{
		logger:    commonlog.GetLogger("nasko.vm"),
		clock:     time.Now,
		heapSize:  DefaultHeapSize,
		stackSize: DefaultStackSize,
	}
}

// WithLogger replaces the engine's logger.
func WithLogger(log commonlog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithTrace logs every executed instruction at debug level.
func WithTrace(trace bool) Option {
	return func(s *settings) {
		s.trace = trace
	}
}

// WithClock sets the time source used to stamp events.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithHeapSize sets the reserved heap size in bytes.
func WithHeapSize(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.heapSize = n
		}
	}
}

// WithStackSize sets the reserved stack capacity in words.
func WithStackSize(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.stackSize = n
		}
	}
}

// WithLogicalCores overrides the core count otherwise read from the runtime.
// Values <= 0 keep the runtime's count.
func WithLogicalCores(n int) Option {
	return func(s *settings) {
		s.logicalCores = n
	}
}

func (s settings) cores() int {
	if s.logicalCores > 0 {
		return s.logicalCores
	}
	return runtime.NumCPU()
}

// LogicalCores returns the core count an engine built with opts would
// report, without building one.
func LogicalCores(opts ...Option) int {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s.cores()
}
