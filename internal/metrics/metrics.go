// Package metrics exposes OpenTelemetry instruments for the combat core.
// Every method is safe on a nil *Recorder so battles can run without metrics.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/udisondev/tankarena/internal/metrics"

// Recorder holds the combat instruments.
type Recorder struct {
	kills      metric.Int64Counter
	damage     metric.Float64Counter
	restarts   metric.Int64Counter
	deliveries metric.Int64Counter
	battles    metric.Int64UpDownCounter
}

// New creates a Recorder on the global OTel meter (no-op if not configured).
func New() (*Recorder, error) {
	return NewWithMeter(otel.Meter(instrumentationName))
}

// NewWithMeter creates a Recorder on the given meter.
func NewWithMeter(m metric.Meter) (*Recorder, error) {
	r := &Recorder{}
	var err error

	r.kills, err = m.Int64Counter(
		"battle.kills",
		metric.WithDescription("Tanks destroyed by other players"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}

	r.damage, err = m.Float64Counter(
		"battle.damage",
		metric.WithDescription("Damage applied to tanks after modifiers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	r.restarts, err = m.Int64Counter(
		"battle.restarts",
		metric.WithDescription("Completed match restarts"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating restarts counter: %w", err)
	}

	r.deliveries, err = m.Int64Counter(
		"battle.flag.deliveries",
		metric.WithDescription("CTF flags delivered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating deliveries counter: %w", err)
	}

	r.battles, err = m.Int64UpDownCounter(
		"battle.active",
		metric.WithDescription("Battles currently open"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating active battles counter: %w", err)
	}

	return r, nil
}

func modeAttr(mode string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("mode", mode))
}

// Kill records a kill in a battle of the given mode.
func (r *Recorder) Kill(mode, weapon string) {
	if r == nil {
		return
	}
	r.kills.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("weapon", weapon),
	))
}

// Damage records applied damage.
func (r *Recorder) Damage(mode string, amount float64) {
	if r == nil || amount <= 0 {
		return
	}
	r.damage.Add(context.Background(), amount, modeAttr(mode))
}

// Restart records a finished restart sequence.
func (r *Recorder) Restart(mode string) {
	if r == nil {
		return
	}
	r.restarts.Add(context.Background(), 1, modeAttr(mode))
}

// FlagDelivered records a CTF delivery.
func (r *Recorder) FlagDelivered(team string) {
	if r == nil {
		return
	}
	r.deliveries.Add(context.Background(), 1, metric.WithAttributes(attribute.String("team", team)))
}

// BattleOpened increments the open battles counter.
func (r *Recorder) BattleOpened(mode string) {
	if r == nil {
		return
	}
	r.battles.Add(context.Background(), 1, modeAttr(mode))
}

// BattleClosed decrements the open battles counter.
func (r *Recorder) BattleClosed(mode string) {
	if r == nil {
		return
	}
	r.battles.Add(context.Background(), -1, modeAttr(mode))
}
