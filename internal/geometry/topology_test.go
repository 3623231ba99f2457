package geometry

import "testing"

func TestBuild_RejectsOutOfRangeN(t *testing.T) {
	cases := []struct{ boxRows, boxCols int }{
		{1, 1}, // n=1, too small
		{1, 3}, // n=3, too small
		{8, 9}, // n=72, too large
		{0, 4}, // non-positive
		{4, 0},
	}
	for _, c := range cases {
		if _, err := Build(c.boxRows, c.boxCols); err == nil {
			t.Errorf("Build(%d,%d): want error, got nil", c.boxRows, c.boxCols)
		}
	}
}

func TestBuild_CachesByDimensions(t *testing.T) {
	a, err := Build(3, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(3, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a != b {
		t.Fatalf("Build(3,3) called twice returned distinct Topologies, want shared cache")
	}
}

func TestBuild_4x4Houses(t *testing.T) {
	topo, err := Build(2, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if topo.N != 4 || topo.NN != 16 {
		t.Fatalf("N=%d NN=%d, want 4,16", topo.N, topo.NN)
	}

	// Every house must contain exactly n distinct cells.
	for h := 0; h < 3*topo.N; h++ {
		start, end := topo.houseRange(h)
		if end-start != topo.N {
			t.Errorf("house %d has %d cells, want %d", h, end-start, topo.N)
		}
		seen := make(map[int]bool)
		for _, cell := range topo.HousesFlat[start:end] {
			if seen[cell] {
				t.Errorf("house %d repeats cell %d", h, cell)
			}
			seen[cell] = true
		}
	}

	// box(0,0) of a 2x2-box 4x4 grid is cells {0,1,4,5}.
	start, end := topo.BoxHouse(0)
	got := append([]int{}, topo.HousesFlat[start:end]...)
	want := []int{0, 1, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("box 0 = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("box 0 = %v, want %v", got, want)
		}
	}
}

func TestPeers_ExcludesSelfAndHasNoDuplicates(t *testing.T) {
	topo, err := Build(2, 3) // n=6
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for idx := 0; idx < topo.NN; idx++ {
		peers := topo.Peers(idx)
		seen := make(map[int]bool, len(peers))
		for _, p := range peers {
			if p == idx {
				t.Fatalf("cell %d lists itself as a peer", idx)
			}
			if seen[p] {
				t.Fatalf("cell %d has duplicate peer %d", idx, p)
			}
			seen[p] = true
		}
	}
}

func TestCellRCB_RoundTrips(t *testing.T) {
	topo, err := Build(3, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for idx := 0; idx < topo.NN; idx++ {
		r, c, b := UnpackRCB(topo.CellRCB[idx])
		if r != topo.CellRow[idx] || c != topo.CellCol[idx] || b != topo.CellBox[idx] {
			t.Fatalf("cell %d: UnpackRCB=(%d,%d,%d), want (%d,%d,%d)",
				idx, r, c, b, topo.CellRow[idx], topo.CellCol[idx], topo.CellBox[idx])
		}
	}
}

func TestCellCenterSym_IsAnInvolution(t *testing.T) {
	topo, err := Build(3, 2) // n=6
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for idx := 0; idx < topo.NN; idx++ {
		partner := topo.CellCenterSym[idx]
		if topo.CellCenterSym[partner] != idx {
			t.Fatalf("center symmetry not involutive at %d: sym=%d, sym(sym)=%d",
				idx, partner, topo.CellCenterSym[partner])
		}
	}
	// Middle cell of an odd n maps to itself; 6 is even so no fixed cell
	// is expected, but the corners must swap.
	if topo.CellCenterSym[0] != topo.NN-1 {
		t.Fatalf("cell 0 should map to the last cell, got %d", topo.CellCenterSym[0])
	}
}

func TestSupportedPairs(t *testing.T) {
	got := SupportedPairs(12)
	want := [][2]int{{1, 12}, {2, 6}, {3, 4}, {4, 3}, {6, 2}, {12, 1}}
	if len(got) != len(want) {
		t.Fatalf("SupportedPairs(12) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SupportedPairs(12)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAllSupportedGeometries_CoversFullRange(t *testing.T) {
	all := AllSupportedGeometries()
	for n := 4; n <= 64; n++ {
		pairs, ok := all[n]
		if !ok || len(pairs) == 0 {
			t.Fatalf("n=%d has no supported geometry pairs", n)
		}
		for _, p := range pairs {
			if p[0]*p[1] != n {
				t.Fatalf("n=%d pair %v does not multiply to n", n, p)
			}
		}
	}
}
