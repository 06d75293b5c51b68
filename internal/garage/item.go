package garage

// WeaponKind identifies a turret archetype.
type WeaponKind string

const (
	Smoky        WeaponKind = "smoky"
	Railgun      WeaponKind = "railgun"
	Shaft        WeaponKind = "shaft"
	Isida        WeaponKind = "isida"
	Freeze       WeaponKind = "freeze"
	Flamethrower WeaponKind = "flamethrower"
	Thunder      WeaponKind = "thunder"
	Twins        WeaponKind = "twins"
	Ricochet     WeaponKind = "ricochet"
)

// Range: диапазон базового урона [From, To].
type Range struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
}

// Weakening описывает ослабление урона с расстоянием (в метрах).
// Minimum: доля урона на дальности To и дальше.
type Weakening struct {
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Minimum float64 `yaml:"minimum"`
}

// Splash: параметры урона по площади. From/To: множители на краю
// и в центре радиуса (в метрах).
type Splash struct {
	Radius float64 `yaml:"radius"`
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
}

// Damage is the damage table of a weapon modification. Every component is optional.
type Damage struct {
	Range     *Range     `yaml:"range"`
	Fixed     *float64   `yaml:"fixed"`
	Weakening *Weakening `yaml:"weakening"`
	Splash    *Splash    `yaml:"splash"`
	Heal      *float64   `yaml:"heal"`
}

// WeaponPhysics holds the turret parameters affected by freeze.
type WeaponPhysics struct {
	TurretRotationSpeed    float64 `yaml:"turret_rotation_speed"`
	TurretTurnAcceleration float64 `yaml:"turret_turn_acceleration"`
}

// HullPhysics holds hull movement parameters.
type HullPhysics struct {
	Speed                   float64 `yaml:"speed"`
	TurnSpeed               float64 `yaml:"turn_speed"`
	Acceleration            float64 `yaml:"acceleration"`
	ReverseAcceleration     float64 `yaml:"reverse_acceleration"`
	SideAcceleration        float64 `yaml:"side_acceleration"`
	TurnAcceleration        float64 `yaml:"turn_acceleration"`
	ReverseTurnAcceleration float64 `yaml:"reverse_turn_acceleration"`
	Mass                    float64 `yaml:"mass"`
	Power                   float64 `yaml:"power"`
	Damping                 float64 `yaml:"damping"`
}

// WeaponModification is one upgrade level of a turret.
type WeaponModification struct {
	Index      int           `yaml:"index"`
	Damage     Damage        `yaml:"damage"`
	Physics    WeaponPhysics `yaml:"physics"`
	Properties Properties    `yaml:"properties"`

	// Filled by the catalog.
	WeaponID string     `yaml:"-"`
	Kind     WeaponKind `yaml:"-"`
}

// Weapon is a turret with its upgrade levels.
type Weapon struct {
	ID            string               `yaml:"id"`
	Name          string               `yaml:"name"`
	Kind          WeaponKind           `yaml:"kind"`
	Modifications []WeaponModification `yaml:"modifications"`
}

// HullModification is one upgrade level of a hull.
type HullModification struct {
	Index      int         `yaml:"index"`
	Physics    HullPhysics `yaml:"physics"`
	Properties Properties  `yaml:"properties"`

	HullID string `yaml:"-"`
}

// DefaultHullArmor is used when a hull has no HULL_ARMOR property.
const DefaultHullArmor = 400

// MaxHealth returns the hull's health pool.
func (h *HullModification) MaxHealth() float64 {
	armor := h.Properties.Float("HULL_ARMOR", DefaultHullArmor)
	if armor <= 0 {
		return DefaultHullArmor
	}
	return armor
}

// Hull is a tank body with its upgrade levels.
type Hull struct {
	ID            string             `yaml:"id"`
	Name          string             `yaml:"name"`
	Modifications []HullModification `yaml:"modifications"`
}

// Paint gives resistances against weapon sources.
type Paint struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Properties Properties `yaml:"properties"`
}

// Loadout identifies the mounted items of a player (as stored by the inventory collaborator).
type Loadout struct {
	HullID    string
	HullMod   int
	WeaponID  string
	WeaponMod int
	PaintID   string
}

// Equipment is a resolved loadout. Pointers are borrowed from the Catalog.
type Equipment struct {
	Hull   *HullModification
	Weapon *WeaponModification
	Paint  *Paint
}
