package pair

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// Pool is a single-writer handle around one pool state. Every operation
// holds the lock from precondition check to snapshot replacement, so callers
// may share a Pool between goroutines.
type Pool struct {
	mu       sync.Mutex
	state    shared.State
	maturity uint64
	fees     shared.Fees
	logger   *zap.Logger
	now      func() uint64
}

type Option func(*Pool)

// WithLogger sets the logger used for accepted and rejected operations.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock replaces the wall clock, in unix seconds.
func WithClock(now func() uint64) Option {
	return func(p *Pool) {
		if now != nil {
			p.now = now
		}
	}
}

// WithState resumes a pool from a snapshot, for example one decoded with helpers.DecodeSnapshot.
func WithState(state shared.State) Option {
	return func(p *Pool) {
		p.state = state.Clone()
	}
}

// NewPool returns an empty pool, or ErrInvalidFee when fees are out of range.
func NewPool(maturity uint64, fees shared.Fees, opts ...Option) (*Pool, error) {
	if err := fees.Validate(); err != nil {
		return nil, err
	}
	p := &Pool{
		state:    shared.NewState(),
		maturity: maturity,
		fees:     fees,
		logger:   zap.NewNop(),
		now:      func() uint64 { return uint64(time.Now().Unix()) },
	}
	for _, fn := range opts {
		fn(p)
	}
	p.logger = p.logger.With(zap.Uint64("maturity", maturity))
	return p, nil
}

// State returns a copy of the current snapshot.
func (p *Pool) State() shared.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

func (p *Pool) Maturity() uint64 {
	return p.maturity
}

func (p *Pool) Fees() shared.Fees {
	return p.fees
}

// commit replaces the snapshot. Callers hold p.mu.
func (p *Pool) commit(next shared.State) {
	p.state = next
}
