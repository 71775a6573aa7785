package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// Marker is the content of a single cell, or the player owning the turn.
type Marker uint8

const (
	Empty Marker = iota
	O
	X
)

const (
	markO     = "O"
	markX     = "X"
	markEmpty = ""
	markDraw  = "-"
)

func (m Marker) String() string {
	switch m {
	case O:
		return markO
	case X:
		return markX
	default:
		return markEmpty
	}
}

// IsPlayer reports whether m is O or X.
func (m Marker) IsPlayer() bool {
	return m == O || m == X
}

func (m Marker) Opponent() Marker {
	switch m {
	case O:
		return X
	case X:
		return O
	default:
		return Empty
	}
}

func ParseMarker(s string) (Marker, error) {
	switch s {
	case markO, "o":
		return O, nil
	case markX, "x":
		return X, nil
	case markEmpty:
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMarker, s)
	}
}

func (m Marker) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Marker) UnmarshalText(text []byte) error {
	parsed, err := ParseMarker(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// Winner is the outcome of a state: undecided, a won line for O or X, or a draw.
type Winner uint8

const (
	WinnerNone Winner = iota
	WinnerO
	WinnerX
	WinnerDraw
)

func winnerOf(m Marker) Winner {
	switch m {
	case O:
		return WinnerO
	case X:
		return WinnerX
	default:
		return WinnerNone
	}
}

// Marker returns the marker that completed a line, Empty for None and Draw.
func (w Winner) Marker() Marker {
	switch w {
	case WinnerO:
		return O
	case WinnerX:
		return X
	default:
		return Empty
	}
}

func (w Winner) String() string {
	if w == WinnerDraw {
		return markDraw
	}

	return w.Marker().String()
}

func (w Winner) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *Winner) UnmarshalText(text []byte) error {
	if string(text) == markDraw {
		*w = WinnerDraw
		return nil
	}

	m, err := ParseMarker(string(text))
	if err != nil {
		return err
	}

	*w = winnerOf(m)

	return nil
}
