package ioformat

import (
	"reflect"
	"testing"
)

func TestRoundTrip_SmallGeometry(t *testing.T) {
	l := Line{
		Seed: 0xC0FFEE, BoxRows: 2, BoxCols: 2, Clues: 10,
		Puzzle:     []int{1, 0, 3, 4, 0, 4, 1, 0, 2, 1, 0, 3, 4, 3, 2, 1},
		Solution:   []int{1, 2, 3, 4, 3, 4, 1, 2, 2, 1, 4, 3, 4, 3, 2, 1},
		Difficulty: 1, Strategy: "NakedSingle",
	}
	line := Format(l)
	got, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Fatalf("round-trip mismatch:\n got  %+v\n want %+v", got, l)
	}
}

func TestRoundTrip_LargeGeometryUsesDottedTokens(t *testing.T) {
	n := 16
	nn := n * n
	puzzle := make([]int, nn)
	solution := make([]int, nn)
	for i := range solution {
		solution[i] = (i % n) + 1
	}
	l := Line{
		Seed: 1, BoxRows: 4, BoxCols: 4, Clues: 0,
		Puzzle: puzzle, Solution: solution,
		Difficulty: 3, Strategy: "NakedPair",
	}
	line := Format(l)
	got, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Fatalf("round-trip mismatch:\n got  %+v\n want %+v", got, l)
	}
}

func TestParse_IgnoresUnknownFields(t *testing.T) {
	base := Line{
		Seed: 1, BoxRows: 2, BoxCols: 2, Clues: 4,
		Puzzle:     []int{1, 2, 3, 4, 3, 4, 1, 2, 2, 1, 4, 3, 4, 3, 2, 1},
		Solution:   []int{1, 2, 3, 4, 3, 4, 1, 2, 2, 1, 4, 3, 4, 3, 2, 1},
		Difficulty: 1, Strategy: "NakedSingle",
	}
	line := Format(base) + ";extra=value;another=1"
	got, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(got, base) {
		t.Fatalf("unknown fields should be ignored, got %+v", got)
	}
}
