package damage

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/udisondev/tankarena/internal/garage"
	"github.com/udisondev/tankarena/internal/model"
)

// fixedRandom returns constant values for deterministic assertions.
type fixedRandom struct {
	f, n float64
}

func (r fixedRandom) Float64() float64     { return r.f }
func (r fixedRandom) NormFloat64() float64 { return r.n }

func fptr(v float64) *float64 { return &v }

func TestRangeRandomBeyondFalloffIsZero(t *testing.T) {
	c := NewCalculatorWithRandom(rand.New(rand.NewPCG(1, 2)))
	r := garage.Range{From: 100, To: 200}
	w := &garage.Weakening{From: 40, To: 60, Minimum: 0.5}

	// normal range 60, falloff 20 -> zero from 80 on
	for _, d := range []float64{80, 81, 150, 1e6} {
		if got := c.RangeRandom(r, w, d); got != 0 {
			t.Errorf("RangeRandom(d=%v) = %v; want 0", d, got)
		}
	}
}

func TestRangeRandomBoundaryWithinRange(t *testing.T) {
	c := NewCalculatorWithRandom(rand.New(rand.NewPCG(7, 7)))
	r := garage.Range{From: 100, To: 200}
	w := &garage.Weakening{From: 40, To: 60, Minimum: 0.5}

	for i := 0; i < 1000; i++ {
		got := c.RangeRandom(r, w, 60)
		if got < 100 || got > 200 {
			t.Fatalf("RangeRandom(d=60) = %v; want within [100,200]", got)
		}
	}
}

func TestRangeRandomMonotonicBeyondBoundary(t *testing.T) {
	c := NewCalculatorWithRandom(fixedRandom{f: 0.5})
	r := garage.Range{From: 100, To: 200}
	w := &garage.Weakening{From: 40, To: 60, Minimum: 0.5}

	prev := math.Inf(1)
	for d := 60.5; d <= 90; d += 0.5 {
		got := c.RangeRandom(r, w, d)
		if got > prev {
			t.Fatalf("RangeRandom(d=%v) = %v; increased from %v", d, got, prev)
		}
		prev = got
	}

	if got := c.RangeRandom(r, w, 70); math.Abs(got-50) > 1e-9 {
		t.Errorf("RangeRandom(d=70) = %v; want 50 (half of min)", got)
	}
}

func TestRangeRandomFallbackFalloff(t *testing.T) {
	c := NewCalculatorWithRandom(fixedRandom{})
	r := garage.Range{From: 100, To: 200}
	// degenerate band: falloff = normalRange * 0.5 = 25
	w := &garage.Weakening{From: 50, To: 50, Minimum: 0.5}

	if got := c.RangeRandom(r, w, 62.5); math.Abs(got-50) > 1e-9 {
		t.Errorf("RangeRandom(d=62.5) = %v; want 50", got)
	}
	if got := c.RangeRandom(r, w, 75); got != 0 {
		t.Errorf("RangeRandom(d=75) = %v; want 0", got)
	}
}

func TestGaussianClamped(t *testing.T) {
	tests := []struct {
		name string
		norm float64
		want float64
	}{
		{"centre", 0, 150},
		{"far left", -100, 100},
		{"far right", 100, 200},
		{"one sigma", 1, 150 + 100.0/6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCalculatorWithRandom(fixedRandom{n: tt.norm})
			if got := c.Gaussian(garage.Range{From: 100, To: 200}); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Gaussian() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestUniform(t *testing.T) {
	c := NewCalculatorWithRandom(fixedRandom{f: 0.25})
	if got := c.Uniform(garage.Range{From: 100, To: 200}); got != 125 {
		t.Errorf("Uniform() = %v; want 125", got)
	}
	// reversed bounds are normalised
	if got := c.Uniform(garage.Range{From: 200, To: 100}); got != 125 {
		t.Errorf("Uniform(reversed) = %v; want 125", got)
	}
}

func TestWeakeningMultiplier(t *testing.T) {
	w := &garage.Weakening{From: 10, To: 30, Minimum: 0.4}

	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 1},
		{10, 1},
		{20, 0.7},
		{30, 0.4},
		{100, 0.4},
	}
	for _, tt := range tests {
		if got := WeakeningMultiplier(w, tt.distance); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WeakeningMultiplier(%v) = %v; want %v", tt.distance, got, tt.want)
		}
	}

	if got := WeakeningMultiplier(nil, 50); got != 1 {
		t.Errorf("WeakeningMultiplier(nil) = %v; want 1", got)
	}

	broken := &garage.Weakening{From: 30, To: 10, Minimum: 0.4}
	if got := WeakeningMultiplier(broken, 20); got != 1 {
		t.Errorf("WeakeningMultiplier(broken, 20) = %v; want 1", got)
	}
	if got := WeakeningMultiplier(broken, 40); got != 0.4 {
		t.Errorf("WeakeningMultiplier(broken, 40) = %v; want 0.4", got)
	}
}

func TestSplash(t *testing.T) {
	s := &garage.Splash{Radius: 10, From: 0.2, To: 1}

	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 1},
		{5, 0.6},
		{10, 0.2},
		{20, 0.2},
	}
	for _, tt := range tests {
		if got := Splash(s, tt.distance); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Splash(%v) = %v; want %v", tt.distance, got, tt.want)
		}
	}
}

func TestShockwave(t *testing.T) {
	const maxDamage, radius = 300.0, 10.0

	if got := Shockwave(maxDamage, radius, 10); got != NoHit {
		t.Errorf("Shockwave(d=radius) = %v; want NoHit", got)
	}
	if got := Shockwave(maxDamage, radius, 25); got != NoHit {
		t.Errorf("Shockwave(d>radius) = %v; want NoHit", got)
	}
	for _, d := range []float64{0, 1.5, 3} {
		if got := Shockwave(maxDamage, radius, d); got != maxDamage {
			t.Errorf("Shockwave(d=%v) = %v; want %v", d, got, maxDamage)
		}
	}

	prev := maxDamage
	for d := 3.1; d < radius; d += 0.1 {
		got := Shockwave(maxDamage, radius, d)
		if got >= prev {
			t.Fatalf("Shockwave(d=%v) = %v; not strictly below %v", d, got, prev)
		}
		if got < 0 {
			t.Fatalf("Shockwave(d=%v) = %v; negative", d, got)
		}
		prev = got
	}

	if got := Shockwave(maxDamage, 0, 1); got != 0 {
		t.Errorf("Shockwave(radius=0) = %v; want 0", got)
	}
}

func TestCalculateByArchetype(t *testing.T) {
	c := NewCalculatorWithRandom(fixedRandom{f: 0.5, n: 0})

	rail := &garage.WeaponModification{
		Kind:   garage.Railgun,
		Damage: garage.Damage{Range: &garage.Range{From: 400, To: 600}, Weakening: &garage.Weakening{From: 1, To: 2, Minimum: 0.1}},
	}
	// beam ignores distance entirely
	if got := c.Calculate(rail, 1000); got.Damage != 500 || !got.Hit {
		t.Errorf("Calculate(railgun) = %+v; want 500", got)
	}

	freeze := &garage.WeaponModification{
		Kind:   garage.Freeze,
		Damage: garage.Damage{Fixed: fptr(50), Weakening: &garage.Weakening{From: 10, To: 20, Minimum: 0.5}},
	}
	if got := c.Calculate(freeze, 15); math.Abs(got.Damage-37.5) > 1e-9 || math.Abs(got.Weakening-0.75) > 1e-9 {
		t.Errorf("Calculate(freeze, 15) = %+v; want damage 37.5 weakening 0.75", got)
	}

	empty := &garage.WeaponModification{Kind: garage.Twins}
	if got := c.Calculate(empty, 10); got.Damage != 15 {
		t.Errorf("Calculate(no table) = %v; want fallback 15", got.Damage)
	}
}

func TestCalculateBetweenConvertsUnits(t *testing.T) {
	c := NewCalculatorWithRandom(fixedRandom{})
	smoky := &garage.WeaponModification{
		Kind:   garage.Smoky,
		Damage: garage.Damage{Range: &garage.Range{From: 100, To: 100}, Weakening: &garage.Weakening{From: 40, To: 60, Minimum: 0.5}},
	}
	// 7000 units = 70 m -> half of minimum
	got := c.CalculateBetween(smoky, model.NewVector3(0, 0, 0), model.NewVector3(7000, 0, 0))
	if math.Abs(got.Damage-50) > 1e-9 {
		t.Errorf("CalculateBetween() = %v; want 50", got.Damage)
	}
}

func TestSplashDamageThunder(t *testing.T) {
	c := NewCalculatorWithRandom(fixedRandom{})
	thunder := &garage.WeaponModification{
		Kind: garage.Thunder,
		Damage: garage.Damage{
			Range:  &garage.Range{From: 300, To: 400},
			Splash: &garage.Splash{Radius: 10, From: 0.1, To: 1},
		},
	}

	if got := c.SplashDamage(thunder, 2); !got.Hit || got.Damage != 300 {
		t.Errorf("SplashDamage(2) = %+v; want full 300", got)
	}
	if got := c.SplashDamage(thunder, 12); got.Hit {
		t.Errorf("SplashDamage(12) = %+v; want miss", got)
	}
}

func TestChance(t *testing.T) {
	c := NewCalculatorWithRandom(fixedRandom{f: 0.149})
	if !c.Chance(15) {
		t.Error("Chance(15) with roll 14.9 = false; want true")
	}
	if c.Chance(0) {
		t.Error("Chance(0) = true; want false")
	}
	c = NewCalculatorWithRandom(fixedRandom{f: 0.15})
	if c.Chance(15) {
		t.Error("Chance(15) with roll 15 = true; want false")
	}
}
