package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionPoints_CurrentTables(t *testing.T) {
	tests := []struct {
		name      string
		predicted int
		reference int
		want      int
	}{
		{"exact match", 1, 1, 25},
		{"off by one", 2, 1, 18},
		{"off by one below", 1, 2, 18},
		{"off by two", 3, 1, 15},
		{"off by three", 4, 1, 10},
		{"off by four", 5, 1, 6},
		{"off by five", 6, 1, 2},
		{"off by six", 7, 1, 0},
		{"way off", 20, 1, 0},
		{"third slot exact", 3, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PositionPoints(CurrentTables, tt.predicted, tt.reference))
		})
	}
}

func TestPositionPoints_ClassicTables(t *testing.T) {
	tests := []struct {
		predicted int
		reference int
		want      int
	}{
		{1, 1, 12},
		{2, 1, 9},
		{3, 1, 7},
		{4, 1, 5},
		{5, 1, 4},
		{6, 1, 2},
		{7, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PositionPoints(ClassicTables, tt.predicted, tt.reference))
	}
}

func TestPositionPoints_MonotonicNonIncreasing(t *testing.T) {
	for _, tables := range []Tables{CurrentTables, ClassicTables} {
		prev := PositionPoints(tables, 1, 1)
		for diff := 1; diff <= 10; diff++ {
			pts := PositionPoints(tables, 1+diff, 1)
			assert.LessOrEqual(t, pts, prev, "tables %s, diff %d", tables.Name, diff)
			prev = pts
		}
	}
}

func TestPositionPoints_ExactMatchIsMaximum(t *testing.T) {
	assert.Equal(t, CurrentTables.MaxPositionPoints(), PositionPoints(CurrentTables, 4, 4))
	assert.Equal(t, 25, CurrentTables.MaxPositionPoints())
	assert.Equal(t, 12, ClassicTables.MaxPositionPoints())
}

func TestPenaltyPoints(t *testing.T) {
	assert.Equal(t, 10, PenaltyPoints(CurrentTables, 1))
	assert.Equal(t, 25, PenaltyPoints(CurrentTables, 2))
	assert.Equal(t, 50, PenaltyPoints(CurrentTables, 3))
	assert.Equal(t, 50, PenaltyPoints(CurrentTables, 7))
	assert.Equal(t, 0, PenaltyPoints(CurrentTables, 0))
	assert.Equal(t, 0, PenaltyPoints(CurrentTables, -1))
}

func TestPenaltyPoints_NonDecreasing(t *testing.T) {
	prev := 0
	for offense := 1; offense <= 6; offense++ {
		pts := PenaltyPoints(CurrentTables, offense)
		assert.GreaterOrEqual(t, pts, prev)
		prev = pts
	}
}

func TestChampionshipPoints_CurrentTables(t *testing.T) {
	actual := Podium{FirstID: 1, SecondID: 2, ThirdID: 3}

	tests := []struct {
		name      string
		predicted Podium
		want      int
	}{
		{"all correct", Podium{1, 2, 3}, 450},
		{"only first", Podium{1, 9, 8}, 250},
		{"only second", Podium{9, 2, 8}, 100},
		{"only third", Podium{9, 8, 3}, 100},
		{"first and second", Podium{1, 2, 8}, 350},
		{"second and third", Podium{9, 2, 3}, 200},
		{"first and third", Podium{1, 8, 3}, 350},
		{"none correct", Podium{9, 8, 7}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChampionshipPoints(CurrentTables, tt.predicted, actual))
		})
	}
}

func TestChampionshipPoints_SlotsAreIndependent(t *testing.T) {
	// Right rider, wrong slot scores nothing.
	actual := Podium{FirstID: 1, SecondID: 2, ThirdID: 3}
	predicted := Podium{FirstID: 2, SecondID: 3, ThirdID: 1}
	assert.Equal(t, 0, ChampionshipPoints(CurrentTables, predicted, actual))
}

func TestChampionshipPoints_ClassicTables(t *testing.T) {
	actual := Podium{FirstID: 1, SecondID: 2, ThirdID: 3}
	assert.Equal(t, 87, ChampionshipPoints(ClassicTables, actual, actual))
	assert.Equal(t, 37, ChampionshipPoints(ClassicTables, Podium{1, 8, 9}, actual))
	assert.Equal(t, 25, ChampionshipPoints(ClassicTables, Podium{8, 2, 9}, actual))
}
