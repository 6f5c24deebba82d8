// Package corewar is the public entry point for loading and running
// Core War matches: champion binaries go in through Load, Run plays a
// match on its own Scheduler and returns the Outcome, and Info exposes a champion's header
// metadata without constructing a match at all. The package itself
// carries no state -- every match lives in its own *vm.Scheduler.
package corewar

import (
	"fmt"

	"corewar/champion"
	"corewar/vm"
)

// Options configures one match (spec §6.2).
type Options struct {
	// MaxCycles bounds how long a match may run before it is declared a
	// Draw; zero or negative means unbounded (run to natural
	// termination).
	MaxCycles int64

	// InitialAddresses, if set, overrides the default even arena
	// spacing; must have one entry per champion.
	InitialAddresses []int32

	// ChampionIDs, if set, overrides the default 1..N id assignment;
	// must have one entry per champion.
	ChampionIDs []int

	// Observe, if set, is called once per cycle with a read-only
	// Snapshot of the match state. It is never consulted by match
	// semantics.
	Observe func(vm.Snapshot)
}

// Metadata is the header information of a champion, independent of
// whether it is ever loaded into a match.
type Metadata struct {
	Name       string
	Comment    string
	BodyLength int
}

// Load parses raw .cor bytes into a Champion. It is a thin, single-file
// wrapper around champion.Parse for callers that only have one file in
// hand; LoadAll should be preferred when loading an entire match's worth
// at once, since it parses the batch concurrently.
func Load(data []byte) (*champion.Champion, error) {
	return champion.Parse(data, 0)
}

// LoadAll parses a full match's worth of .cor files concurrently (see
// champion.ParseAll) and returns them in input order.
func LoadAll(inputs [][]byte) ([]*champion.Champion, error) {
	return champion.ParseAll(inputs)
}

// Info reports a loaded champion's header metadata.
func Info(c *champion.Champion) Metadata {
	return Metadata{Name: c.Name, Comment: c.Comment, BodyLength: c.BodyLength}
}

// Run places the given champions in a fresh arena per opts and drives
// the match to completion, returning the winner or a Draw (spec §6.2,
// §6.4). Run returns an error only for a load-time failure: a
// *champion.LoadError for too many champions or duplicate/invalid ids, a
// plain error for an empty champion list or mismatched option lengths.
// It never returns a mid-match failure, since
// decode and register-index errors are defined no-op behavior rather
// than errors.
func Run(champions []*champion.Champion, opts Options) (vm.Outcome, error) {
	if len(champions) == 0 {
		return vm.Outcome{}, fmt.Errorf("corewar: Run requires at least one champion")
	}

	s, err := vm.NewScheduler(champions, vm.LoadOptions{
		InitialAddresses: opts.InitialAddresses,
		ChampionIDs:      opts.ChampionIDs,
	})
	if err != nil {
		return vm.Outcome{}, err
	}
	s.Snapshot = opts.Observe

	return s.Run(opts.MaxCycles), nil
}
