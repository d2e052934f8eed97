package models

import (
	"testing"

	"github.com/dmitrijs2005/voyagelog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiveLog_AddDefaults(t *testing.T) {
	var d DiveLog
	e := d.Add(TeamReaper)
	assert.Equal(t, DiveEntry{OurTeam: TeamReaper, EnemyTeam: TeamAthena, Outcome: OutcomeWin}, e)
	require.Len(t, d, 1)
}

func TestDiveLog_UpdateAndRemove(t *testing.T) {
	var d DiveLog
	d.Add(TeamAthena)
	d.Add(TeamAthena)

	require.NoError(t, d.UpdateAt(1, DivePatch{Outcome: ptr(OutcomeLoss), Notes: ptr("anchored")}))
	assert.Equal(t, OutcomeLoss, d[1].Outcome)
	assert.Equal(t, "anchored", d[1].Notes)

	require.NoError(t, d.RemoveAt(0))
	require.Len(t, d, 1)
	assert.Equal(t, "anchored", d[0].Notes)

	assert.ErrorIs(t, d.UpdateAt(5, DivePatch{}), common.ErrorOutOfRange)
	assert.ErrorIs(t, d.RemoveAt(1), common.ErrorOutOfRange)
}

func TestDiveLog_SetOurTeamKeepsEnemy(t *testing.T) {
	d := DiveLog{
		{OurTeam: TeamAthena, EnemyTeam: TeamReaper},
		{OurTeam: TeamAthena, EnemyTeam: TeamAthena},
	}
	d.SetOurTeam(TeamReaper)
	assert.Equal(t, TeamReaper, d[0].OurTeam)
	assert.Equal(t, TeamReaper, d[0].EnemyTeam)
	assert.Equal(t, TeamAthena, d[1].EnemyTeam)
}

func TestDiveLog_Paginate(t *testing.T) {
	tests := []struct {
		name  string
		count int
		sizes []int
	}{
		{"empty", 0, nil},
		{"one", 1, []int{1}},
		{"exactly one page", 12, []int{12}},
		{"thirteen", 13, []int{12, 1}},
		{"twenty five", 25, []int{12, 12, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DiveLog
			for i := 0; i < tt.count; i++ {
				d.Add(TeamAthena)
			}
			pages := d.Paginate(DivesPerPage)
			var sizes []int
			for _, p := range pages {
				sizes = append(sizes, len(p))
			}
			assert.Equal(t, tt.sizes, sizes)
		})
	}
}

func TestDiveLog_Transport(t *testing.T) {
	d := DiveLog{{OurTeam: TeamAthena, EnemyTeam: TeamReaper, Outcome: OutcomeWin, Notes: "clean"}}
	s, err := d.ToTransport()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"ourTeam":"Athena","enemyTeam":"Reaper","outcome":"win","notes":"clean"}]`, s)
	assert.Equal(t, d, ParseDives(s))
	assert.Equal(t, DiveLog{}, ParseDives("{broken"))
}
