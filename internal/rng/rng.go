package rng

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource supplies uniform draws in [0,1). Engines that flip coins or
// sample bands take one of these instead of calling a global RNG, so tests
// can pin every draw.
type RandomSource interface {
	Float64() float64
}

// Clock supplies the current time. Engines that schedule maturities take one
// of these instead of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// systemSource is a process-lifetime RandomSource backed by math/rand.
type systemSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSystemSource returns a RandomSource seeded from the wall clock.
func NewSystemSource() RandomSource {
	return &systemSource{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededSource returns a deterministic RandomSource for tests and replays.
func NewSeededSource(seed int64) RandomSource {
	return &systemSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *systemSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// SequenceSource replays a fixed list of draws, cycling when exhausted.
// Used by tests to force exact boundary behavior (e.g. a draw of 0).
type SequenceSource struct {
	Values []float64
	next   int
}

func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// systemClock reads the wall clock.
type systemClock struct{}

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
