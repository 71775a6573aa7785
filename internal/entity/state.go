package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

// WinLines lists every row, column and both diagonals, in that order.
var WinLines = buildWinLines()

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func (p Position) index() int {
	return p.Row*BoardSize + p.Col
}

// State is a snapshot of one board. It holds no pointers or slices, so plain
// assignment yields an independent copy.
type State struct {
	grid           [CellCount]Marker
	turn           Marker
	starter        Marker
	remainingMoves int
	winner         Winner
	lastMove       Position
	hasLastMove    bool
	winningLine    [BoardSize]Position
	hasWinningLine bool
}

// NewState returns an empty board with starter to move. Anything other than X starts with O.
func NewState(starter Marker) State {
	if starter != X {
		starter = O
	}

	state := State{starter: starter}
	state.Reset()

	return state
}

// FromGrid builds a state from an arbitrary board, recomputing the remaining moves and the winner.
// The starting player is inferred from the marker count and turn.
func FromGrid(grid [CellCount]Marker, turn Marker) (State, error) {
	if !turn.IsPlayer() {
		return State{}, fmt.Errorf("%w: turn %d", apperror.ErrInvalidMarker, turn)
	}

	state := State{grid: grid, turn: turn, remainingMoves: CellCount}
	for i, cell := range grid {
		if cell > X {
			return State{}, fmt.Errorf("%w: cell %d holds %d", apperror.ErrInvalidMarker, i, cell)
		}

		if cell != Empty {
			state.remainingMoves--
		}
	}

	state.starter = turn
	if (CellCount-state.remainingMoves)%2 == 1 {
		state.starter = turn.Opponent()
	}

	state.CheckForWinner()

	return state, nil
}

func (that *State) Reset() {
	if !that.starter.IsPlayer() {
		that.starter = O
	}

	*that = State{
		turn:           that.starter,
		starter:        that.starter,
		remainingMoves: CellCount,
	}
}

// PlaceMarker puts the current player's marker at (row, col). Every failure wraps
// apperror.ErrInvalidMove and leaves the state untouched.
func (that *State) PlaceMarker(row, col int) error {
	pos := Position{Row: row, Col: col}

	switch {
	case !that.turn.IsPlayer():
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameIsNotStarted)
	case that.winner != WinnerNone:
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)
	case !pos.InBounds():
		return fmt.Errorf("%w: %w: (%d, %d)", apperror.ErrInvalidMove, apperror.ErrCellOutOfRange, row, col)
	case that.grid[pos.index()] != Empty:
		return fmt.Errorf("%w: %w: (%d, %d)", apperror.ErrInvalidMove, apperror.ErrCellOccupied, row, col)
	}

	that.grid[pos.index()] = that.turn
	that.remainingMoves--
	that.lastMove = pos
	that.hasLastMove = true

	that.CheckForWinner()
	if that.winner == WinnerNone {
		that.switchTurn()
	}

	return nil
}

// CheckForWinner recomputes winner and winning line from the whole grid.
func (that *State) CheckForWinner() {
	that.winner = WinnerNone
	that.winningLine = [BoardSize]Position{}
	that.hasWinningLine = false

	for _, line := range WinLines {
		first := that.grid[line[0].index()]
		if first == Empty {
			continue
		}

		complete := true
		for _, pos := range line[1:] {
			if that.grid[pos.index()] != first {
				complete = false
				break
			}
		}

		if complete {
			that.winner = winnerOf(first)
			that.winningLine = line
			that.hasWinningLine = true

			return
		}
	}

	if that.remainingMoves == 0 {
		that.winner = WinnerDraw
	}
}

func (that *State) switchTurn() {
	that.turn = that.turn.Opponent()
}

func (that State) Copy() State {
	return that
}

// Apply returns the successor state after the current player moves to pos.
func (that State) Apply(pos Position) (State, error) {
	next := that
	if err := next.PlaceMarker(pos.Row, pos.Col); err != nil {
		return that, err
	}

	return next, nil
}

func (that State) Cell(row, col int) Marker {
	pos := Position{Row: row, Col: col}
	if !pos.InBounds() {
		return Empty
	}

	return that.grid[pos.index()]
}

func (that State) Grid() [CellCount]Marker {
	return that.grid
}

func (that State) Board() [BoardSize][BoardSize]Marker {
	var board [BoardSize][BoardSize]Marker
	for i, cell := range that.grid {
		board[i/BoardSize][i%BoardSize] = cell
	}

	return board
}

func (that State) Turn() Marker {
	return that.turn
}

func (that State) Starter() Marker {
	return that.starter
}

func (that State) RemainingMoves() int {
	return that.remainingMoves
}

func (that State) Winner() Winner {
	return that.winner
}

func (that State) IsOver() bool {
	return that.winner != WinnerNone
}

func (that State) LastMove() (Position, bool) {
	return that.lastMove, that.hasLastMove
}

func (that State) WinningLine() ([BoardSize]Position, bool) {
	return that.winningLine, that.hasWinningLine
}

// EmptyCells lists the free cells in row-major order.
func (that State) EmptyCells() []Position {
	cells := make([]Position, 0, that.remainingMoves)
	for i, cell := range that.grid {
		if cell == Empty {
			cells = append(cells, Position{Row: i / BoardSize, Col: i % BoardSize})
		}
	}

	return cells
}

type stateJSON struct {
	Grid           [CellCount]Marker `json:"grid"`
	Turn           Marker            `json:"turn"`
	Starter        Marker            `json:"starter"`
	RemainingMoves int               `json:"remaining_moves"`
	Winner         Winner            `json:"winner"`
	LastMove       *Position         `json:"last_move,omitempty"`
	WinningLine    []Position        `json:"winning_line,omitempty"`
}

func (that State) MarshalJSON() ([]byte, error) {
	out := stateJSON{
		Grid:           that.grid,
		Turn:           that.turn,
		Starter:        that.starter,
		RemainingMoves: that.remainingMoves,
		Winner:         that.winner,
	}

	if that.hasLastMove {
		lastMove := that.lastMove
		out.LastMove = &lastMove
	}

	if that.hasWinningLine {
		out.WinningLine = that.winningLine[:]
	}

	return json.Marshal(out)
}

// UnmarshalJSON trusts only the grid, turn, starter and last move; the derived fields are recomputed.
func (that *State) UnmarshalJSON(data []byte) error {
	var in stateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to unmarshal state: %w", err)
	}

	state, err := FromGrid(in.Grid, in.Turn)
	if err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}

	if in.Starter.IsPlayer() {
		state.starter = in.Starter
	}

	if in.LastMove != nil && in.LastMove.InBounds() && state.grid[in.LastMove.index()] != Empty {
		state.lastMove = *in.LastMove
		state.hasLastMove = true
	}

	*that = state

	return nil
}

func buildWinLines() [][BoardSize]Position {
	lines := make([][BoardSize]Position, 0, 2*BoardSize+2)

	for row := 0; row < BoardSize; row++ {
		var line [BoardSize]Position
		for col := 0; col < BoardSize; col++ {
			line[col] = Position{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	for col := 0; col < BoardSize; col++ {
		var line [BoardSize]Position
		for row := 0; row < BoardSize; row++ {
			line[row] = Position{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	var diagonal, antiDiagonal [BoardSize]Position
	for i := 0; i < BoardSize; i++ {
		diagonal[i] = Position{Row: i, Col: i}
		antiDiagonal[i] = Position{Row: i, Col: BoardSize - 1 - i}
	}

	return append(lines, diagonal, antiDiagonal)
}
