// Package ioformat implements the accepted-puzzle output line format:
// Format and Parse are exact inverses, round-tripping a puzzle/solution
// grid pair through one semicolon-delimited text line.
package ioformat

import (
	"fmt"
	"strconv"
	"strings"
)

// Line is one parsed output record.
type Line struct {
	Seed       uint64
	BoxRows    int
	BoxCols    int
	Clues      int
	Puzzle     []int
	Solution   []int
	Difficulty int
	Strategy   string
}

// encodeGrid renders values (0 = empty, else 1..n) as plain concatenated
// decimal digits when n <= 9, else as dot-separated decimal tokens.
func encodeGrid(values []int, n int) string {
	if n <= 9 {
		var sb strings.Builder
		sb.Grow(len(values))
		for _, v := range values {
			sb.WriteByte(byte('0' + v))
		}
		return sb.String()
	}
	toks := make([]string, len(values))
	for i, v := range values {
		toks[i] = strconv.Itoa(v)
	}
	return strings.Join(toks, ".")
}

// decodeGrid is encodeGrid's inverse, needing n only to choose the
// encoding, and nn to validate length.
func decodeGrid(s string, n, nn int) ([]int, error) {
	if n <= 9 {
		if len(s) != nn {
			return nil, fmt.Errorf("ioformat: grid length %d, want %d", len(s), nn)
		}
		out := make([]int, nn)
		for i := 0; i < nn; i++ {
			c := s[i]
			if c < '0' || c > '9' {
				return nil, fmt.Errorf("ioformat: invalid digit byte %q at %d", c, i)
			}
			out[i] = int(c - '0')
		}
		return out, nil
	}
	toks := strings.Split(s, ".")
	if len(toks) != nn {
		return nil, fmt.Errorf("ioformat: grid has %d tokens, want %d", len(toks), nn)
	}
	out := make([]int, nn)
	for i, tok := range toks {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("ioformat: invalid token %q at %d: %w", tok, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Format renders l as one output line, without the trailing newline
// (callers append "\n" when writing).
func Format(l Line) string {
	n := l.BoxRows * l.BoxCols
	return fmt.Sprintf(
		"seed=%d;box=%dx%d;clues=%d;puzzle=%s;solution=%s;difficulty=%d;strategy=%s",
		l.Seed, l.BoxRows, l.BoxCols, l.Clues,
		encodeGrid(l.Puzzle, n), encodeGrid(l.Solution, n),
		l.Difficulty, l.Strategy,
	)
}

// Parse is Format's inverse. Unknown trailing `;key=value` fields are
// ignored, so the format can grow new fields without breaking old readers.
func Parse(line string) (Line, error) {
	fields := strings.Split(strings.TrimRight(line, "\n"), ";")
	var l Line
	var boxRows, boxCols int
	haveBox := false
	var puzzleStr, solutionStr string

	for _, f := range fields {
		kv := strings.SplitN(f, "=", 2)
		if len(kv) != 2 {
			return Line{}, fmt.Errorf("ioformat: malformed field %q", f)
		}
		key, val := kv[0], kv[1]
		switch key {
		case "seed":
			v, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return Line{}, fmt.Errorf("ioformat: bad seed: %w", err)
			}
			l.Seed = v
		case "box":
			parts := strings.SplitN(val, "x", 2)
			if len(parts) != 2 {
				return Line{}, fmt.Errorf("ioformat: bad box %q", val)
			}
			var err error
			boxRows, err = strconv.Atoi(parts[0])
			if err != nil {
				return Line{}, fmt.Errorf("ioformat: bad box_rows: %w", err)
			}
			boxCols, err = strconv.Atoi(parts[1])
			if err != nil {
				return Line{}, fmt.Errorf("ioformat: bad box_cols: %w", err)
			}
			haveBox = true
			l.BoxRows, l.BoxCols = boxRows, boxCols
		case "clues":
			v, err := strconv.Atoi(val)
			if err != nil {
				return Line{}, fmt.Errorf("ioformat: bad clues: %w", err)
			}
			l.Clues = v
		case "puzzle":
			puzzleStr = val
		case "solution":
			solutionStr = val
		case "difficulty":
			v, err := strconv.Atoi(val)
			if err != nil {
				return Line{}, fmt.Errorf("ioformat: bad difficulty: %w", err)
			}
			l.Difficulty = v
		case "strategy":
			l.Strategy = val
		default:
			// Unknown extra field: ignored.
		}
	}

	if !haveBox {
		return Line{}, fmt.Errorf("ioformat: missing box field")
	}
	n := boxRows * boxCols
	nn := n * n

	var err error
	l.Puzzle, err = decodeGrid(puzzleStr, n, nn)
	if err != nil {
		return Line{}, err
	}
	l.Solution, err = decodeGrid(solutionStr, n, nn)
	if err != nil {
		return Line{}, err
	}
	return l, nil
}
