package garage

// Specification is the full set of physical parameters broadcast to clients
// when a status effect overrides tank movement.
type Specification struct {
	Speed                   float64
	TurnSpeed               float64
	Acceleration            float64
	ReverseAcceleration     float64
	SideAcceleration        float64
	TurnAcceleration        float64
	ReverseTurnAcceleration float64
	TurretRotationSpeed     float64
	TurretTurnAcceleration  float64
	Mass                    float64
	Power                   float64
	Damping                 float64
}

// Specification builds the baseline parameters from the mounted hull and turret.
func (e Equipment) Specification() Specification {
	var s Specification
	if e.Hull != nil {
		hp := e.Hull.Physics
		s.Speed = hp.Speed
		s.TurnSpeed = hp.TurnSpeed
		s.Acceleration = hp.Acceleration
		s.ReverseAcceleration = hp.ReverseAcceleration
		s.SideAcceleration = hp.SideAcceleration
		s.TurnAcceleration = hp.TurnAcceleration
		s.ReverseTurnAcceleration = hp.ReverseTurnAcceleration
		s.Mass = hp.Mass
		s.Power = hp.Power
		s.Damping = hp.Damping
	}
	if e.Weapon != nil {
		s.TurretRotationSpeed = e.Weapon.Physics.TurretRotationSpeed
		s.TurretTurnAcceleration = e.Weapon.Physics.TurretTurnAcceleration
	}
	return s
}

// Scaled returns a copy with every movement parameter multiplied by factor.
// Mass, power and damping are not affected.
func (s Specification) Scaled(factor float64) Specification {
	s.Speed *= factor
	s.TurnSpeed *= factor
	s.Acceleration *= factor
	s.ReverseAcceleration *= factor
	s.SideAcceleration *= factor
	s.TurnAcceleration *= factor
	s.ReverseTurnAcceleration *= factor
	s.TurretRotationSpeed *= factor
	s.TurretTurnAcceleration *= factor
	return s
}
