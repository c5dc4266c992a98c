// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"sync"

	"github.com/pdiddy/film-aggregator/pkg/types"
)

type slotState uint8

const (
	slotPending slotState = iota
	slotMatched
	slotFilled
	slotSkipped
)

// gather is the result buffer of one run. Slots are addressed by the
// catalog index of their source film, so output order never depends on
// completion order. All fields are guarded by mu.
type gather struct {
	mu       sync.Mutex
	films    []types.Film
	skips    []types.Skip
	state    []slotState
	expected int
	produced int
	done     bool
}

func newGather(n int) *gather {
	return &gather{
		films: make([]types.Film, n),
		skips: make([]types.Skip, n),
		state: make([]slotState, n),
	}
}

// match records that slot i found its TMDB record and will produce a film.
func (g *gather) match(i int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state[i] == slotPending {
		g.state[i] = slotMatched
		g.expected++
	}
}

// put stores the film of slot i. The slot must have been matched.
func (g *gather) put(i int, f types.Film) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state[i] != slotMatched {
		return fmt.Errorf("slot %d: film produced without a match", i)
	}
	g.films[i] = f
	g.state[i] = slotFilled
	g.produced++
	return nil
}

// skip marks slot i as dropped for lack of a TMDB match.
func (g *gather) skip(i int, s types.Skip) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.skips[i] = s
	g.state[i] = slotSkipped
}

// complete returns the ordered films and skips. It succeeds once, and only
// when every slot is settled and the produced count equals the expected
// count.
func (g *gather) complete() ([]types.Film, []types.Skip, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done {
		return nil, nil, 0, fmt.Errorf("run already completed")
	}
	if g.produced != g.expected {
		return nil, nil, 0, fmt.Errorf("incomplete run: %d of %d films produced", g.produced, g.expected)
	}

	films := make([]types.Film, 0, g.produced)
	var skips []types.Skip
	for i, st := range g.state {
		switch st {
		case slotFilled:
			films = append(films, g.films[i])
		case slotSkipped:
			skips = append(skips, g.skips[i])
		default:
			return nil, nil, 0, fmt.Errorf("incomplete run: slot %d unsettled", i)
		}
	}
	g.done = true
	return films, skips, g.expected, nil
}
