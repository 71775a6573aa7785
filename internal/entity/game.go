package entity

import (
	"math/rand"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

// Game is one stored match between a human and the engine.
type Game struct {
	ID    string `json:"id"`
	Human Marker `json:"human"`
	Bot   Marker `json:"bot"`
	State State  `json:"state"`
}

func NewGame(id string, human, starter Marker) *Game {
	return &Game{
		ID:    id,
		Human: human,
		Bot:   human.Opponent(),
		State: NewState(starter),
	}
}

func (that *Game) Status() string {
	switch {
	case that.State.IsOver():
		return StatusFinished
	case that.State.Turn().IsPlayer():
		return StatusOngoing
	default:
		return StatusWaiting
	}
}

func (that *Game) IsFinished() bool {
	return that.Status() == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status() == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.State.Turn() == that.Bot
}

func (that *Game) IsHumanTurn() bool {
	return that.IsOngoing() && that.State.Turn() == that.Human
}

// GetRandomMarks returns the human and bot markers in random order.
func GetRandomMarks() (Marker, Marker) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return X, O
	}
	return O, X
}
