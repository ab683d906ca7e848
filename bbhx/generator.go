// Package bbhx adapts a frequency-domain massive-black-hole-binary waveform
// generator to the template parameter conventions of this module.
package bbhx

import (
	"fmt"
	"sync"
)

// Mode is a spherical-harmonic (l, m) pair requested from the generator.
type Mode struct {
	L, M int
}

// AmpPhaseOptions parameterize generator construction.
type AmpPhaseOptions struct {
	// RunPhenomD restricts the amplitude/phase model to the dominant
	// quadrupole IMRPhenomD model instead of the multi-mode superset.
	RunPhenomD bool
}

// Request is a single generator call. The physical parameters follow the
// generator's positional order.
type Request struct {
	M1          float64 // solar masses
	M2          float64 // solar masses
	A1          float64 // aligned spin of the first body
	A2          float64 // aligned spin of the second body
	Distance    float64 // meters
	PhiRef      float64
	FRef        float64 // Hz, 0 selects the generator's internal reference
	Inclination float64
	Lambda      float64
	Beta        float64
	Psi         float64
	TRef        float64 // seconds

	Freqs        []float64
	Modes        []Mode
	Direct       bool
	Fill         bool
	Squeeze      bool
	Length       int
	TObsStart    float64 // years before merger
	TObsEnd      float64 // years before merger
	ShiftTLimits bool
}

// Generator produces one complex array per output channel, each aligned with
// Request.Freqs.
type Generator interface {
	Generate(req *Request) ([][]complex128, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(req *Request) ([][]complex128, error)

func (f GeneratorFunc) Generate(req *Request) ([][]complex128, error) {
	return f(req)
}

// Factory constructs a generator.
type Factory func(opts AmpPhaseOptions) (Generator, error)

// Pool memoizes one generator per AmpPhaseOptions. It is safe for
// concurrent use.
type Pool struct {
	mu      sync.Mutex
	factory Factory
	gens    map[AmpPhaseOptions]Generator
}

// NewPool creates a pool backed by factory
func NewPool(factory Factory) *Pool {
	return &Pool{
		factory: factory,
		gens:    make(map[AmpPhaseOptions]Generator),
	}
}

// Get returns the cached generator for opts, constructing it on first use.
// Construction failures are not cached.
func (p *Pool) Get(opts AmpPhaseOptions) (Generator, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if g, ok := p.gens[opts]; ok {
		return g, nil
	}
	if p.factory == nil {
		return nil, ErrNoFactory
	}
	g, err := p.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to construct generator: %w", err)
	}
	p.gens[opts] = g
	return g, nil
}

// Len returns the number of cached generators
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.gens)
}
