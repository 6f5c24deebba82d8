package vm

import "github.com/davecgh/go-spew/spew"

// String renders a Snapshot with go-spew, the same way the teacher's
// debugger dumped an opcode definition (cpu/debugger.go View, via
// spew.Sdump) -- here repurposed from an interactive TUI frame into a
// plain, loggable dump of one cycle's state, since terminal
// visualization itself is out of scope.
func (s Snapshot) String() string {
	return dumpConfig.Sdump(s)
}

// dumpConfig is the spew configuration String and Dump use. DisableMethods
// keeps spew from calling Snapshot.String on the value being dumped (which
// would recurse); pointer addresses and capacities are left out.
var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump is the terse form of String: it reports counts instead of raw
// memory, for use in high-frequency hooks where a full Sdump per cycle
// would dominate the match's own runtime.
func (s Snapshot) Dump() string {
	type brief struct {
		Cycle      int64
		Processes  int
		CycleToDie int64
	}
	return dumpConfig.Sdump(brief{s.Cycle, s.Processes, s.CycleToDie})
}
