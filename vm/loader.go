package vm

import (
	"fmt"

	"corewar/arena"
	"corewar/champion"
)

// LoadOptions controls where champions are placed in the arena and which
// ids they are assigned, mirroring the command-line overrides a real
// corewar driver exposes (spec §6.2 Options: InitialAddresses, ChampionIDs).
type LoadOptions struct {
	// InitialAddresses, if non-nil, must have one entry per champion and
	// overrides the default even-spacing placement.
	InitialAddresses []int32

	// ChampionIDs, if non-nil, must have one entry per champion and
	// overrides the default 1..N assignment.
	ChampionIDs []int
}

// load validates champs against MaxPlayers and id uniqueness, places each
// champion's body in the arena, and seeds one starting Process per
// champion (spec §4.1, §6.4 exit codes 1/2).
func load(champs []*champion.Champion, opts LoadOptions) (*Scheduler, error) {
	n := len(champs)
	if n == 0 {
		return nil, fmt.Errorf("no champions to load")
	}
	if n > MaxPlayers {
		return nil, &champion.LoadError{Kind: champion.TooManyChampions, Which: n - 1}
	}
	if opts.InitialAddresses != nil && len(opts.InitialAddresses) != n {
		return nil, fmt.Errorf("InitialAddresses length %d does not match champion count %d", len(opts.InitialAddresses), n)
	}
	if opts.ChampionIDs != nil && len(opts.ChampionIDs) != n {
		return nil, fmt.Errorf("ChampionIDs length %d does not match champion count %d", len(opts.ChampionIDs), n)
	}

	ids := make([]int, n)
	seen := map[int]bool{}
	for i := range champs {
		id := i + 1
		if opts.ChampionIDs != nil {
			id = opts.ChampionIDs[i]
		}
		if id < 1 {
			return nil, &champion.LoadError{Kind: champion.InvalidID, Which: i}
		}
		if seen[id] {
			return nil, &champion.LoadError{Kind: champion.DuplicateID, Which: i}
		}
		seen[id] = true
		ids[i] = id
	}

	a := arena.New()
	champMap := make(map[int]*champion.Champion, n)
	processes := make([]*Process, 0, n)
	spacing := int32(arena.Size / n)

	lastID := ids[n-1]
	for i, c := range champs {
		id := ids[i]
		c.ID = id
		champMap[id] = c

		addr := int32(i) * spacing
		if opts.InitialAddresses != nil {
			addr = opts.InitialAddresses[i]
		}
		a.Blit(addr, c.Body, byte(id))
		processes = append(processes, newProcess(addr, id))
	}

	return &Scheduler{
		Arena:       a,
		Champions:   champMap,
		Processes:   processes,
		CycleToDie:  CycleToDieInit,
		lastLoadedID: lastID,
	}, nil
}
