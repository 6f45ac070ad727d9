package engine

import "errors"

// ErrorKind classifies a failed game command
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindIllegalArgument
	KindIllegalCell
	KindCellEmpty
	KindMoveTooFar
	KindCellOccupied
	KindOutOfRange
	KindOutOfAmmo
	KindIllegalTarget
)

var kindNames = map[ErrorKind]string{
	KindNone:            "None",
	KindIllegalArgument: "IllegalArgument",
	KindIllegalCell:     "IllegalCell",
	KindCellEmpty:       "CellEmpty",
	KindMoveTooFar:      "MoveTooFar",
	KindCellOccupied:    "CellOccupied",
	KindOutOfRange:      "OutOfRange",
	KindOutOfAmmo:       "OutOfAmmo",
	KindIllegalTarget:   "IllegalTarget",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// GameError is returned by every rejected game command
type GameError struct {
	Kind ErrorKind
}

func (e *GameError) Error() string {
	return "A game related error has occurred: " + e.Kind.String()
}

var (
	ErrIllegalArgument = &GameError{Kind: KindIllegalArgument}
	ErrIllegalCell     = &GameError{Kind: KindIllegalCell}
	ErrCellEmpty       = &GameError{Kind: KindCellEmpty}
	ErrMoveTooFar      = &GameError{Kind: KindMoveTooFar}
	ErrCellOccupied    = &GameError{Kind: KindCellOccupied}
	ErrOutOfRange      = &GameError{Kind: KindOutOfRange}
	ErrOutOfAmmo       = &GameError{Kind: KindOutOfAmmo}
	ErrIllegalTarget   = &GameError{Kind: KindIllegalTarget}
)

// KindOf extracts the error kind from err, or KindNone if err is not a game error
func KindOf(err error) ErrorKind {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Kind
	}
	return KindNone
}
