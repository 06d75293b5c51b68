package battle

import "errors"

var (
	// ErrPlayerNotFound is returned when the user is not in the battle.
	ErrPlayerNotFound = errors.New("player not in battle")
	// ErrAlreadyInBattle is returned when a user joins twice.
	ErrAlreadyInBattle = errors.New("player already in battle")
	// ErrBattleFull is returned when the roster has no free slots.
	ErrBattleFull = errors.New("battle is full")
	// ErrBattleClosed is returned for operations on a closed battle.
	ErrBattleClosed = errors.New("battle closed")
	// ErrRearmingDisabled rejects equipment changes mid-battle.
	ErrRearmingDisabled = errors.New("rearming disabled in this battle")
	// ErrSupplyCooldown rejects supply use while the previous one recharges.
	ErrSupplyCooldown = errors.New("supply on cooldown")
	// ErrSuppliesDisabled rejects supply use when the battle forbids it.
	ErrSuppliesDisabled = errors.New("supplies disabled in this battle")
	// ErrNoTank is returned when an operation needs a spawned tank.
	ErrNoTank = errors.New("no tank")
)
