package engine

import (
	"fmt"
	"strings"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Setup
	AddCharacter(p GridPoint, c Character) error

	// Commands
	Move(src, dst GridPoint) error
	Attack(src, dst GridPoint) error
	Reload(p GridPoint) error

	// Queries
	IsOver() (Team, bool)
	CharacterAt(p GridPoint) (Character, bool)
	Units() []Placement
	Rows() []string
	Height() int
	Width() int
}

// Game is one match: a board with fixed dimensions and the characters on it
type Game struct {
	board *Board
}

var _ Engine = (*Game)(nil)

// NewGame creates an empty game
func NewGame(height, width int) (*Game, error) {
	board, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	return &Game{board: board}, nil
}

// Clone returns a fully independent copy of the game
func (g *Game) Clone() *Game {
	return &Game{board: g.board.Clone()}
}

func (g *Game) Height() int {
	return g.board.Height()
}

func (g *Game) Width() int {
	return g.board.Width()
}

// Board exposes the underlying board for read access
func (g *Game) Board() *Board {
	return g.board
}

// AddCharacter places a new character on an empty cell
func (g *Game) AddCharacter(p GridPoint, c Character) error {
	if err := g.checkInBoard(p); err != nil {
		return err
	}
	if err := g.checkEmpty(p); err != nil {
		return err
	}
	return g.board.Insert(p, c)
}

// Move relocates the character at src to dst
func (g *Game) Move(src, dst GridPoint) error {
	if err := g.checkInBoard(src); err != nil {
		return err
	}
	if err := g.checkInBoard(dst); err != nil {
		return err
	}
	mover, err := g.occupant(src)
	if err != nil {
		return err
	}
	if !mover.LegalMove(Distance(src, dst)) {
		return fmt.Errorf("%w: %s to %s", ErrMoveTooFar, src, dst)
	}
	if err := g.checkEmpty(dst); err != nil {
		return err
	}
	g.board.relocate(src, dst)
	return nil
}

// Attack lets the character at src attack dst using its own rules
func (g *Game) Attack(src, dst GridPoint) error {
	if err := g.checkInBoard(src); err != nil {
		return err
	}
	if err := g.checkInBoard(dst); err != nil {
		return err
	}
	attacker, err := g.occupant(src)
	if err != nil {
		return err
	}
	if err := attacker.Attack(g.board, src, dst); err != nil {
		return fmt.Errorf("%w: %s %s at %s", err, attacker.Type(), src, dst)
	}
	return nil
}

// Reload refills the ammo of the character at p
func (g *Game) Reload(p GridPoint) error {
	if err := g.checkInBoard(p); err != nil {
		return err
	}
	c, err := g.occupant(p)
	if err != nil {
		return err
	}
	c.Reload()
	return nil
}

// IsOver reports whether only one team is left on the board. An empty
// board has no winner.
func (g *Game) IsOver() (Team, bool) {
	var winner Team
	found := false
	for _, c := range g.board.cells {
		if !found {
			winner = c.Team()
			found = true
			continue
		}
		if c.IsEnemy(winner) {
			return "", false
		}
	}
	return winner, found
}

// CharacterAt returns the character at p, if any
func (g *Game) CharacterAt(p GridPoint) (Character, bool) {
	return g.board.At(p)
}

// Units lists every character in row-major order
func (g *Game) Units() []Placement {
	units := make([]Placement, 0, g.board.Len())
	g.board.Each(func(p GridPoint, c Character) {
		units = append(units, Placement{
			Position: p,
			Type:     c.Type(),
			Team:     c.Team(),
			Stats:    c.Stats(),
		})
	})
	return units
}

// Rows renders the board one string per row, one glyph per cell
func (g *Game) Rows() []string {
	rows := make([]string, g.Height())
	var sb strings.Builder
	for r := 0; r < g.Height(); r++ {
		sb.Reset()
		for col := 0; col < g.Width(); col++ {
			glyph := rune(EmptyGlyph)
			if c, ok := g.board.At(Point(r, col)); ok {
				glyph = Glyph(c.Type(), c.Team())
			}
			sb.WriteRune(glyph)
		}
		rows[r] = sb.String()
	}
	return rows
}

// String renders the whole board row-major as a single string
func (g *Game) String() string {
	return strings.Join(g.Rows(), "")
}

func (g *Game) checkInBoard(p GridPoint) error {
	if !g.board.InBounds(p) {
		return fmt.Errorf("%w: %s is outside the %dx%d board", ErrIllegalCell, p, g.Height(), g.Width())
	}
	return nil
}

func (g *Game) checkEmpty(p GridPoint) error {
	if _, ok := g.board.At(p); ok {
		return fmt.Errorf("%w: %s", ErrCellOccupied, p)
	}
	return nil
}

func (g *Game) occupant(p GridPoint) (Character, error) {
	c, ok := g.board.At(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCellEmpty, p)
	}
	return c, nil
}
