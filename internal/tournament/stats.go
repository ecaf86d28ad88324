package tournament

import "fmt"

// Stats are a competitor's latent attributes. Every value lies in [0,1) and is
// fixed at creation.
type Stats struct {
	Strength     float64 `json:"strength"`
	Agility      float64 `json:"agility"`
	Luck         float64 `json:"luck"`
	Intelligence float64 `json:"intelligence"`
	Trust        float64 `json:"trust"`
	Betrayal     float64 `json:"betrayal"`
}

// GenerateStats draws six independent values from src, in field order.
func GenerateStats(src Source) Stats {
	return Stats{
		Strength:     src.Float64(),
		Agility:      src.Float64(),
		Luck:         src.Float64(),
		Intelligence: src.Float64(),
		Trust:        src.Float64(),
		Betrayal:     src.Float64(),
	}
}

// Reflex is the Red Light, Green Light survival threshold.
func (s Stats) Reflex() float64 {
	return (s.Agility + s.Luck) / 2
}

// FinalBase is the deterministic part of a competitor's power in the final.
func (s Stats) FinalBase() float64 {
	return s.Strength + s.Intelligence
}

// validate rejects values outside [0,1), including NaN.
func (s Stats) validate() error {
	fields := [...]struct {
		name string
		v    float64
	}{
		{"strength", s.Strength},
		{"agility", s.Agility},
		{"luck", s.Luck},
		{"intelligence", s.Intelligence},
		{"trust", s.Trust},
		{"betrayal", s.Betrayal},
	}
	for _, f := range fields {
		if !(f.v >= 0 && f.v < 1) {
			return fmt.Errorf("%s %v outside [0,1)", f.name, f.v)
		}
	}
	return nil
}
