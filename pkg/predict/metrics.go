package predict

import "strings"

// PlayerMetrics carries auxiliary strength signals for a player. All
// fields are optional; players outside the table have no metrics at all.
type PlayerMetrics struct {
	Elo      *float64 `json:"elo,omitempty"`
	HoldPct  *float64 `json:"hold_pct,omitempty"`
	BreakPct *float64 `json:"break_pct,omitempty"`
	Form30   *float64 `json:"form30,omitempty"`
}

// builtinMetrics is a small seed table keyed by display name.
// TODO replace with an Elo feed once one is wired in; until then only a
// handful of headline players carry auxiliary signals.
var builtinMetrics = map[string]PlayerMetrics{
	"Novak Djokovic": metrics(2400, 0.90, 0.30, 0.8),
	"Carlos Alcaraz": metrics(2350, 0.88, 0.28, 0.7),
	"Iga Swiatek":    metrics(2300, 0.82, 0.44, 0.9),
}

func metrics(elo, hold, brk, form float64) PlayerMetrics {
	return PlayerMetrics{Elo: &elo, HoldPct: &hold, BreakPct: &brk, Form30: &form}
}

// MetricsFor looks up a player's auxiliary metrics by display name,
// case-insensitively. Unknown players get empty metrics.
func MetricsFor(name string) PlayerMetrics {
	for k, v := range builtinMetrics {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return PlayerMetrics{}
}
