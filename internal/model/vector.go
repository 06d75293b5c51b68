package model

import "math"

// ToMeters переводит внутренние единицы позиции (сантиметры клиента)
// в единицы, в которых заданы дальности оружия.
const ToMeters = 0.01

// Vector3 представляет точку или направление в пространстве карты.
// Value type, передаётся по значению.
type Vector3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// NewVector3 создаёт Vector3 с указанными координатами.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add возвращает сумму векторов.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub возвращает разность векторов.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// WithZ возвращает копию с изменённой высотой.
func (v Vector3) WithZ(z float64) Vector3 {
	v.Z = z
	return v
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt).
func (v Vector3) DistanceSquared(o Vector3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance возвращает расстояние до другой точки во внутренних единицах.
func (v Vector3) Distance(o Vector3) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}

// DistanceMeters возвращает расстояние в единицах конфигурации оружия.
func (v Vector3) DistanceMeters(o Vector3) float64 {
	return v.Distance(o) * ToMeters
}

// Orientation: углы поворота корпуса (Эйлер, радианы).
type Orientation struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}
