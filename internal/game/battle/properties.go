package battle

import "time"

// Properties are the per-battle rule switches chosen by the battle creator.
type Properties struct {
	DamageEnabled          bool
	FriendlyFireEnabled    bool
	SelfDamageEnabled      bool
	RearmingEnabled        bool
	InstantSelfDestruct    bool
	DeactivateMinesOnDeath bool
	SuppliesEnabled        bool
	ParkourMode            bool
	Private                bool

	// ScoreLimit is kills in DM and team score in team modes. 0 disables it.
	ScoreLimit int
	// TimeLimit of 0 disables the match clock.
	TimeLimit time.Duration

	MinRank   int
	MaxRank   int
	MaxPeople int
}

// DefaultProperties returns the properties of a freshly created public battle.
func DefaultProperties() Properties {
	return Properties{
		DamageEnabled:   true,
		RearmingEnabled: true,
		SuppliesEnabled: true,
		MinRank:         1,
		MaxRank:         30,
	}
}
