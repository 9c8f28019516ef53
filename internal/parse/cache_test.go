package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTripPreservesActionAndGoto(t *testing.T) {
	g := exprGrammar(t)
	table, err := constructLALR1ParseTable(*g)
	require.NoError(t, err)

	snap := Snapshot(table)
	rebuilt := FromSnapshot(snap)

	assert.Equal(t, table.Initial(), rebuilt.Initial())
	assert.Equal(t, table.String(), rebuilt.String())

	onID := rebuilt.Action(rebuilt.Initial(), "id")
	assert.Equal(t, LRShift, onID.Type)
	assert.Equal(t, table.Action(table.Initial(), "id").State, onID.State)
}

func TestSnapshot_MissingCellsReportError(t *testing.T) {
	g := exprGrammar(t)
	table, err := constructLALR1ParseTable(*g)
	require.NoError(t, err)

	rebuilt := FromSnapshot(Snapshot(table))
	act := rebuilt.Action("no-such-state", "id")
	assert.Equal(t, LRError, act.Type)

	_, err = rebuilt.Goto("no-such-state", "E")
	assert.Error(t, err)
}
