package garage

import "math"

// DamageSourceMine is the explicit damage source tag used for mine explosions.
const DamageSourceMine = "mine"

var resistanceProperties = map[string]string{
	"smoky":        "SMOKY_RESISTANCE",
	"twins":        "TWINS_RESISTANCE",
	"ricochet":     "RICOCHET_RESISTANCE",
	"thunder":      "THUNDER_RESISTANCE",
	"railgun":      "RAILGUN_RESISTANCE",
	"shaft":        "SHAFT_RESISTANCE",
	"flamethrower": "FIREBIRD_RESISTANCE",
	"freeze":       "FREEZE_RESISTANCE",
	"isida":        "ISIS_RESISTANCE",
	"mine":         "MINE_RESISTANCE",
}

// ResistanceProperty maps a weapon id or damage source tag to the paint property holding its resistance.
func ResistanceProperty(source string) (string, bool) {
	p, ok := resistanceProperties[source]
	return p, ok
}

// ResistanceMultiplier returns the damage multiplier the paint grants against source.
// Resistance is a percentage; the result is clamped to [0, 1] and never amplifies damage.
func (p *Paint) ResistanceMultiplier(source string) float64 {
	if p == nil {
		return 1
	}
	name, ok := ResistanceProperty(source)
	if !ok {
		return 1
	}
	pct := p.Properties.Float(name, 0)
	return math.Min(1, math.Max(0, 1-pct/100))
}
