// Package vm implements the decoder, executor, process model, and
// round-robin scheduler described by the core spec: Decode produces an
// Instruction (decode.go), Scheduler.Step drives one cycle of execution
// against it (this file), and the opcode bodies live in instructions.go.
// The shape is the teacher's cpu.tick/cpu.loop pair (cpu/cpu.go) --
// decode once, count cooldown down to zero, execute, re-decode --
// generalized from one CPU to an ordered list of cooperating processes.
package vm

import (
	"io"

	"corewar/arena"
	"corewar/champion"
)

// Scheduler constants (spec §3, §4.4).
const (
	CycleToDieInit = 1536
	NbrLiveTarget  = 40
	MaxChecks      = 10
	CycleDelta     = 5
	MaxPlayers     = 4
)

// OutcomeKind distinguishes how a match ended.
type OutcomeKind int

const (
	OutcomeWinner OutcomeKind = iota
	OutcomeDraw
)

// Outcome is the caller-visible result of a match (spec §6.2, §7).
type Outcome struct {
	Kind     OutcomeKind
	WinnerID int
}

// Snapshot is a read-only view of the machine state, handed to the
// per-cycle observer hook. It is never consulted by VM semantics.
type Snapshot struct {
	Cycle      int64
	Arena      [arena.Size]byte
	Owners     [arena.Size]byte
	Processes  int
	CycleToDie int64
}

// Scheduler owns all mutable match state: the arena, the champion
// table, the live process list, and the cycle-to-die liveness game
// described in spec §4.4. A Scheduler runs on exactly one goroutine for
// its entire lifetime -- spec §5 forbids multi-threaded VM execution,
// and nothing here is safe for concurrent use.
type Scheduler struct {
	Arena      *arena.Arena
	Champions  map[int]*champion.Champion
	Processes  []*Process
	Out        io.Writer
	Snapshot   func(Snapshot)

	Cycle                  int64
	CycleToDie             int64
	CyclesSinceCheck       int64
	NbrLives               int64
	ChecksWithoutDecrement int

	pendingForks []*Process
	lastLoadedID int
}

// NewScheduler builds a Scheduler from already-parsed champions and the
// loader's placement decisions; it is the exported form of load
// (loader.go). Raw .cor bytes are parsed beforehand by champion.Parse.
func NewScheduler(champs []*champion.Champion, opts LoadOptions) (*Scheduler, error) {
	return load(champs, opts)
}

// Step advances the match by exactly one cycle (spec §4.4, steps 1-4),
// then invokes the snapshot hook if one is set. It returns true if the
// match has reached a terminal state (empty process list or
// CycleToDie <= 0) -- callers should stop calling Step once true.
func (s *Scheduler) Step() bool {
	s.Cycle++
	s.CyclesSinceCheck++

	for _, p := range s.Processes {
		s.advance(p)
	}

	s.Processes = append(s.Processes, s.pendingForks...)
	s.pendingForks = s.pendingForks[:0]

	if s.CyclesSinceCheck >= s.CycleToDie {
		s.deathCheck()
	}

	if s.Snapshot != nil {
		s.Snapshot(s.snapshotNow())
	}

	return len(s.Processes) == 0 || s.CycleToDie <= 0
}

// advance runs one process's share of the current cycle: decode if its
// cache is cold, count down if warm, or execute and re-arm once the
// cooldown has elapsed (spec §4.4 step 2).
func (s *Scheduler) advance(p *Process) {
	if p.pending == nil {
		inst := Decode(s.Arena, p.PC)
		p.pending = &inst
		p.cooldown = inst.Cost - 1
		return
	}

	if p.cooldown > 0 {
		p.cooldown--
		return
	}

	inst := p.pending
	jumped := false
	if h, ok := handlers[inst.Op]; ok {
		jumped = h(s, p, inst.Operands, opcodeTable[inst.Op].Long)
	}
	if !jumped {
		p.PC = wrapPC(p.PC + int32(inst.Size))
	}
	p.pending = nil
}

// deathCheck implements spec §4.4 step 4: cull processes that failed to
// prove life within the current threshold, then adjust the threshold
// itself based on recent liveness pressure.
func (s *Scheduler) deathCheck() {
	threshold := s.Cycle - s.CycleToDie

	survivors := s.Processes[:0]
	for _, p := range s.Processes {
		if p.LastLiveCycle != -1 && p.LastLiveCycle >= threshold {
			survivors = append(survivors, p)
		}
	}
	s.Processes = survivors

	if s.NbrLives >= NbrLiveTarget || s.ChecksWithoutDecrement >= MaxChecks {
		s.CycleToDie -= CycleDelta
		s.ChecksWithoutDecrement = 0
	} else {
		s.ChecksWithoutDecrement++
	}

	s.NbrLives = 0
	s.CyclesSinceCheck = 0
}

func (s *Scheduler) snapshotNow() Snapshot {
	return Snapshot{
		Cycle:      s.Cycle,
		Arena:      s.Arena.Bytes(),
		Owners:     s.Arena.Owners(),
		Processes:  len(s.Processes),
		CycleToDie: s.CycleToDie,
	}
}

// Winner determines the match outcome per spec §4.4 step 5: highest
// champion LastLiveCycle, ties broken by highest champion id; if no
// champion ever issued live, the last-loaded champion wins.
func (s *Scheduler) Winner() Outcome {
	best := -1
	var bestCycle int64 = -1
	anyLive := false
	for id, c := range s.Champions {
		if c.LastLiveCycle == -1 {
			continue
		}
		anyLive = true
		if c.LastLiveCycle > bestCycle || (c.LastLiveCycle == bestCycle && id > best) {
			bestCycle = c.LastLiveCycle
			best = id
		}
	}
	if !anyLive {
		return Outcome{Kind: OutcomeWinner, WinnerID: s.lastLoadedID}
	}
	return Outcome{Kind: OutcomeWinner, WinnerID: best}
}

// Run drives the scheduler to a natural termination, or until maxCycles
// is reached (maxCycles <= 0 means unbounded, per spec §6.2's
// "max_cycles: i64 default unbounded"). If maxCycles expires with more
// than one champion still represented among the surviving processes, the
// outcome is a Draw (spec §7); otherwise the outcome is Winner's
// highest-LastLiveCycle result, even though CycleToDie never reached zero.
func (s *Scheduler) Run(maxCycles int64) Outcome {
	for {
		terminated := s.Step()
		if terminated {
			return s.Winner()
		}
		if maxCycles > 0 && s.Cycle >= maxCycles {
			return s.outcomeAtCutoff()
		}
	}
}

func (s *Scheduler) outcomeAtCutoff() Outcome {
	seen := map[int]bool{}
	for _, p := range s.Processes {
		seen[p.ChampionID] = true
	}
	if len(seen) <= 1 {
		return s.Winner()
	}
	return Outcome{Kind: OutcomeDraw}
}
