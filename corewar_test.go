package corewar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corewar/champion"
	"corewar/vm"
)

func imp(name string) *champion.Champion {
	return &champion.Champion{
		Name:          name,
		LastLiveCycle: -1,
		Body:          []byte{0x01, 0x00, 0x00, 0x00, 0x01}, // live %1
		BodyLength:    5,
	}
}

func TestInfoReportsHeaderMetadata(t *testing.T) {
	c := imp("imp")
	c.Comment = "the classic one-instruction warrior"
	meta := Info(c)
	assert.Equal(t, "imp", meta.Name)
	assert.Equal(t, 5, meta.BodyLength)
	assert.Equal(t, "the classic one-instruction warrior", meta.Comment)
}

func TestLoadRoundTripsThroughEncode(t *testing.T) {
	c := imp("imp")
	data := c.Encode()
	decoded, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, c.Name, decoded.Name)
	assert.Equal(t, c.Body, decoded.Body)
}

func TestRunRejectsEmptyChampionList(t *testing.T) {
	_, err := Run(nil, Options{})
	assert.Error(t, err)
}

func TestRunSingleChampionAlwaysWins(t *testing.T) {
	// Even a non-looping warrior that calls live exactly once and is
	// later culled by the death check still wins: it is the only
	// champion that ever proved life, so Winner falls out of the
	// highest-LastLiveCycle rule rather than needing a survivor left in
	// the process list.
	c := imp("imp")
	outcome, err := Run([]*champion.Champion{c}, Options{MaxCycles: 10000})
	require.NoError(t, err)
	assert.Equal(t, vm.OutcomeWinner, outcome.Kind)
	assert.Equal(t, 1, outcome.WinnerID)
}

func TestRunTwoImpsDrawAtCutoff(t *testing.T) {
	// A cutoff short enough that neither process has had a chance to
	// miss a cycle-to-die check (1536 cycles away): both champions are
	// still represented among the surviving processes, so the match
	// must resolve as a Draw rather than declare either a winner.
	a, b := imp("a"), imp("b")
	outcome, err := Run([]*champion.Champion{a, b}, Options{MaxCycles: 12})
	require.NoError(t, err)
	assert.Equal(t, vm.OutcomeDraw, outcome.Kind)
}

func TestRunObserveHookIsCalledEachCycle(t *testing.T) {
	c := imp("imp")
	var cycles int
	_, err := Run([]*champion.Champion{c}, Options{
		MaxCycles: 25,
		Observe:   func(vm.Snapshot) { cycles++ },
	})
	require.NoError(t, err)
	assert.Equal(t, 25, cycles)
}
