// Package damage turns weapon configuration and hit geometry into damage values.
// Nothing here holds state; randomness comes from an injectable source.
package damage

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
)

const (
	// NoHit is returned by Shockwave for targets outside the blast radius.
	NoHit = -1.0

	// ShockwaveInnerFactor: доля радиуса взрыва, внутри которой урон полный.
	ShockwaveInnerFactor = 0.3

	// fallbackFalloffFactor sizes the falloff band when weakening.to <= weakening.from.
	fallbackFalloffFactor = 0.5
)

// Fallbacks for weapons with missing damage tables.
var (
	DefaultRange = garage.Range{From: 10, To: 20}
	DefaultFixed = 10.0
)

// Random is the randomness source. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	NormFloat64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64     { return rand.Float64() }
func (globalRandom) NormFloat64() float64 { return rand.NormFloat64() }

// Result of a damage calculation.
type Result struct {
	Damage float64
	// Weakening is the distance multiplier shown by clients (1 = no weakening).
	Weakening float64
	Critical  bool
	// Hit is false when the target lies outside a shockwave radius.
	Hit bool
}

// Calculator computes damage by weapon archetype.
type Calculator struct {
	rnd Random
}

// NewCalculator creates a Calculator on the process-wide random source.
func NewCalculator() *Calculator {
	return &Calculator{rnd: globalRandom{}}
}

// NewCalculatorWithRandom creates a Calculator with a custom source (tests, replays).
func NewCalculatorWithRandom(r Random) *Calculator {
	return &Calculator{rnd: r}
}

// Uniform draws uniformly from [r.From, r.To].
func (c *Calculator) Uniform(r garage.Range) float64 {
	lo, hi := ordered(r)
	return lo + c.rnd.Float64()*(hi-lo)
}

// Gaussian draws from a normal distribution centred in the range (3 sigma = half width),
// clamped to the range.
func (c *Calculator) Gaussian(r garage.Range) float64 {
	lo, hi := ordered(r)
	if hi == lo {
		return lo
	}
	mean := (lo + hi) / 2
	sigma := (hi - lo) / 6
	v := mean + c.rnd.NormFloat64()*sigma
	return math.Min(hi, math.Max(lo, v))
}

// Chance rolls a percentage check.
func (c *Calculator) Chance(percent float64) bool {
	if percent <= 0 {
		return false
	}
	return c.rnd.Float64()*100 < percent
}

// RangeRandom computes damage for range weapons (smoky, twins, ricochet, thunder).
// Within the normal range (weakening.to) damage is random in [min,max]; beyond it
// damage decays linearly from min to zero over the falloff band.
func (c *Calculator) RangeRandom(r garage.Range, w *garage.Weakening, distance float64) float64 {
	if w == nil {
		return c.Gaussian(r)
	}

	normalRange := w.To
	if distance <= normalRange {
		return c.Gaussian(r)
	}

	falloff := w.To - w.From
	if falloff <= 0 {
		falloff = normalRange * fallbackFalloffFactor
	}
	if falloff <= 0 || distance >= normalRange+falloff {
		return 0
	}

	minDamage, _ := ordered(r)
	t := clamp01(1 - (distance-normalRange)/falloff)
	return math.Max(0, minDamage*t)
}

// WeakeningMultiplier interpolates between 1 (at w.From) and w.Minimum (at w.To).
// A band with From >= To degrades to a step at From.
func WeakeningMultiplier(w *garage.Weakening, distance float64) float64 {
	if w == nil {
		return 1
	}
	minimum := clamp01(w.Minimum)
	switch {
	case distance <= w.From:
		return 1
	case w.From >= w.To, distance >= w.To:
		return minimum
	}
	t := (distance - w.From) / (w.To - w.From)
	return 1 - t*(1-minimum)
}

// Splash interpolates linearly between s.From at the radius edge and s.To at the centre.
func Splash(s *garage.Splash, distance float64) float64 {
	if s == nil {
		return 1
	}
	lo, hi := s.From, s.To
	if lo > hi {
		lo, hi = hi, lo
	}
	if s.Radius <= 0 || distance >= s.Radius {
		return lo
	}
	return lo + (1-distance/s.Radius)*(hi-lo)
}

// Shockwave returns splash damage around an explosion centre: full maxDamage inside the
// inner radius, linear decay to zero at the radius, and NoHit at or beyond it.
func Shockwave(maxDamage, radius, distance float64) float64 {
	if radius <= 0 {
		return 0
	}
	if distance >= radius {
		return NoHit
	}
	inner := radius * ShockwaveInnerFactor
	if distance <= inner {
		return maxDamage
	}
	t := clamp01(1 - (distance-inner)/(radius-inner))
	return math.Max(0, maxDamage*t)
}

// Calculate computes the direct-hit damage of weapon at distance (already in metres).
func (c *Calculator) Calculate(w *garage.WeaponModification, distance float64) Result {
	cfg := w.Damage
	weakening := WeaponWeakening(w, distance)

	var dmg float64
	switch {
	case cfg.Range != nil && isBeam(w.Kind):
		dmg = c.Uniform(*cfg.Range)
	case cfg.Range != nil:
		dmg = c.RangeRandom(*cfg.Range, cfg.Weakening, distance)
	case cfg.Fixed != nil:
		dmg = *cfg.Fixed * weakening
	default:
		slog.Debug("weapon has no base damage, using fallback",
			"weapon", w.WeaponID,
			"modification", w.Index)
		dmg = c.Gaussian(DefaultRange)
	}

	slog.Debug("damage calculated",
		"weapon", w.WeaponID,
		"modification", w.Index,
		"distance", distance,
		"weakening", weakening,
		"damage", dmg)

	return Result{Damage: dmg, Weakening: weakening, Hit: true}
}

// CalculateBetween converts the distance between two positions to metres and calls Calculate.
func (c *Calculator) CalculateBetween(w *garage.WeaponModification, from, to model.Vector3) Result {
	return c.Calculate(w, from.DistanceMeters(to))
}

// SplashDamage computes area damage of weapon at distance (metres) from the explosion.
// Shockwave weapons (thunder) use the dedicated curve and may report a miss; others
// scale the direct-hit damage by the generic splash multiplier.
func (c *Calculator) SplashDamage(w *garage.WeaponModification, distance float64) Result {
	cfg := w.Damage
	if w.Kind == garage.Thunder && cfg.Splash != nil {
		maxDamage := DefaultRange.From
		if cfg.Range != nil {
			maxDamage, _ = ordered(*cfg.Range)
		}
		v := Shockwave(maxDamage, cfg.Splash.Radius, distance)
		if v == NoHit {
			return Result{Weakening: 1}
		}
		return Result{Damage: v, Weakening: 1, Hit: true}
	}

	direct := c.Calculate(w, distance)
	direct.Damage *= Splash(cfg.Splash, distance)
	return direct
}

// WeaponWeakening is the client-visible weakening of weapon at distance.
func WeaponWeakening(w *garage.WeaponModification, distance float64) float64 {
	return WeakeningMultiplier(w.Damage.Weakening, distance)
}

func isBeam(k garage.WeaponKind) bool {
	return k == garage.Railgun || k == garage.Shaft
}

func ordered(r garage.Range) (float64, float64) {
	if r.From > r.To {
		return r.To, r.From
	}
	return r.From, r.To
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
