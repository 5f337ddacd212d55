package game

import (
	"testing"

	"github.com/Garsondee/Scrap-Arena/internal/mathx"
)

func checkEnemyColumns(t *testing.T, e *Enemies) {
	t.Helper()
	n := e.Len()
	if len(e.Vel) != n || len(e.Start) != n || len(e.Health) != n || len(e.Scrap) != n {
		t.Fatalf("enemy columns out of step: pos=%d vel=%d start=%d health=%d scrap=%d",
			n, len(e.Vel), len(e.Start), len(e.Health), len(e.Scrap))
	}
}

func TestEnemies_SwapRemoveMovesLast(t *testing.T) {
	var e Enemies
	for i := 0; i < 4; i++ {
		e.Add(mathx.V2(float64(i), 0), 1)
	}
	e.SwapRemove(1)
	checkEnemyColumns(t, &e)
	if e.Len() != 3 {
		t.Fatalf("len = %d, want 3", e.Len())
	}
	if e.Pos[1].X != 3 {
		t.Fatalf("expected last enemy moved into slot 1, got x=%f", e.Pos[1].X)
	}
}

func TestEnemies_RemoveIndicesHandlesDuplicatesAndOrder(t *testing.T) {
	var e Enemies
	for i := 0; i < 6; i++ {
		e.Add(mathx.V2(float64(i), 0), 1)
	}
	removed := e.RemoveIndices([]int{1, 5, 1, 3})
	checkEnemyColumns(t, &e)
	if removed != 3 || e.Len() != 3 {
		t.Fatalf("removed=%d len=%d, want 3/3", removed, e.Len())
	}
	left := map[float64]bool{}
	for _, p := range e.Pos {
		left[p.X] = true
	}
	for _, want := range []float64{0, 2, 4} {
		if !left[want] {
			t.Fatalf("enemy %v should survive, got %v", want, e.Pos)
		}
	}
}

func TestSwapRemove_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic removing from empty collection")
		}
	}()
	var p Pickups
	p.SwapRemove(0)
}

func TestStructures_FindAndCellRect(t *testing.T) {
	var s Structures
	s.Add(Cell{2, -1}, 1, StructureWall)
	s.Add(Cell{0, 0}, 1, StructureTurret)
	if s.Find(Cell{0, 0}) != 1 || s.Find(Cell{5, 5}) != -1 {
		t.Fatal("Find returned wrong index")
	}
	c := CellAt(mathx.V2(-0.1, 0.3), 0.25)
	if c != (Cell{-1, 1}) {
		t.Fatalf("CellAt = %+v, want {-1 1}", c)
	}
	r := c.Rect(0.25)
	if !r.Contains(mathx.V2(-0.1, 0.3)) {
		t.Fatalf("cell rect %+v does not contain its point", r)
	}
}
