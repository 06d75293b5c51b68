package garage

import (
	"log/slog"
	"strconv"
	"strings"
)

// Property: узел дерева свойств предмета гаража.
// Значение либо число, либо строка (проценты записываются как "15" или "15%").
type Property struct {
	Name       string     `yaml:"property"`
	Value      any        `yaml:"value"`
	Properties Properties `yaml:"properties"`
}

// Properties is a list of property trees attached to an item modification.
type Properties []Property

// Find searches the tree depth-first and returns the first property with the given name.
func (p Properties) Find(name string) (Property, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop, true
		}
		if found, ok := prop.Properties.Find(name); ok {
			return found, true
		}
	}
	return Property{}, false
}

// Float returns the numeric value of the named property.
// Missing properties and malformed values resolve to fallback.
func (p Properties) Float(name string, fallback float64) float64 {
	prop, ok := p.Find(name)
	if !ok {
		return fallback
	}
	v, ok := prop.Float()
	if !ok {
		slog.Debug("malformed item property, using fallback",
			"property", name,
			"value", prop.Value,
			"fallback", fallback)
		return fallback
	}
	return v
}

// FirstFloat returns the value of the first present property among names.
func (p Properties) FirstFloat(fallback float64, names ...string) float64 {
	for _, name := range names {
		if _, ok := p.Find(name); ok {
			return p.Float(name, fallback)
		}
	}
	return fallback
}

// Float converts the property value to float64.
func (p Property) Float() (float64, bool) {
	switch v := p.Value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
