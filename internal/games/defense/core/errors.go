package core

import "errors"

// Sentinel errors returned by the simulation. Callers match them with errors.Is.
var (
	ErrInvalidBoard       = errors.New("defense: invalid board dimensions")
	ErrOutOfBounds        = errors.New("defense: coordinate out of bounds")
	ErrPathIncomplete     = errors.New("defense: path walk stopped before the goal")
	ErrNotBuildable       = errors.New("defense: cell is not buildable")
	ErrOccupied           = errors.New("defense: cell is already occupied")
	ErrNotOccupied        = errors.New("defense: cell has no tower")
	ErrUnknownTower       = errors.New("defense: unknown tower")
	ErrUnknownTowerKind   = errors.New("defense: unknown tower kind")
	ErrInsufficientFunds  = errors.New("defense: not enough money")
	ErrUpgradeUnavailable = errors.New("defense: tower upgrades are not enabled")
	ErrGameOver           = errors.New("defense: game is over")
)
