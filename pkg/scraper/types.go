package scraper

import "time"

// Surface is a normalized court surface
type Surface string

const (
	SurfaceHard    Surface = "hard"
	SurfaceClay    Surface = "clay"
	SurfaceGrass   Surface = "grass"
	SurfaceIndoors Surface = "indoors"
	SurfaceUnknown Surface = ""
)

// Round is a normalized tournament round label
type Round string

const (
	RoundFinal Round = "Final"
	RoundSF    Round = "SF"
	RoundQF    Round = "QF"
	RoundR16   Round = "R16"
	RoundR32   Round = "R32"
	RoundR64   Round = "R64"
	RoundR1    Round = "R1"
	RoundR2    Round = "R2"
	RoundQual  Round = "Qual"
	RoundNone  Round = ""
)

// Match is one scheduled or played match scraped from a daily listing.
// Within one scrape a match is uniquely identified by (PlayerA, PlayerB,
// Start); duplicates keep the first occurrence.
type Match struct {
	ID         string     `json:"id"`
	Tournament string     `json:"tour"`
	Round      Round      `json:"round"`
	Start      *time.Time `json:"start"`
	PlayerA    string     `json:"playerA"`
	PlayerB    string     `json:"playerB"`
	SlugA      string     `json:"slugA,omitempty"`
	SlugB      string     `json:"slugB,omitempty"`
	Surface    Surface    `json:"surface"`
	OddsA      *float64   `json:"oddsA,omitempty"`
	OddsB      *float64   `json:"oddsB,omitempty"`
}

// WinLoss is a parsed "W/L" record. Pct is nil when no games were played
// or the source cell was absent or malformed.
type WinLoss struct {
	W   int      `json:"w"`
	L   int      `json:"l"`
	Pct *float64 `json:"pct"`
}

// SurfaceRow is one yearly row of a player's surface results table,
// each cell holding the raw "W/L" text as scraped
type SurfaceRow struct {
	Label   string `json:"label"`
	Summary string `json:"summary,omitempty"`
	Clay    string `json:"clay,omitempty"`
	Hard    string `json:"hard,omitempty"`
	Indoors string `json:"indoors,omitempty"`
	Grass   string `json:"grass,omitempty"`
}

// SurfaceTotals aggregates a player's record per surface
type SurfaceTotals struct {
	Overall WinLoss `json:"overall"`
	Clay    WinLoss `json:"clay"`
	Hard    WinLoss `json:"hard"`
	Indoors WinLoss `json:"indoors"`
	Grass   WinLoss `json:"grass"`
}

// PlayerSurfaceStats is a player's profile as scraped from their page
type PlayerSurfaceStats struct {
	Slug    string        `json:"slug"`
	Name    string        `json:"name"`
	Country string        `json:"country,omitempty"`
	Rank    *int          `json:"rank"`
	Rows    []SurfaceRow  `json:"rows"`
	Totals  SurfaceTotals `json:"totals"`
}

// ForSurface returns the totals entry for the given surface,
// falling back to the overall record for unknown surfaces
func (t *SurfaceTotals) ForSurface(s Surface) WinLoss {
	switch s {
	case SurfaceClay:
		return t.Clay
	case SurfaceHard:
		return t.Hard
	case SurfaceIndoors:
		return t.Indoors
	case SurfaceGrass:
		return t.Grass
	default:
		return t.Overall
	}
}

// Meeting is one prior meeting between two players, in source order
// (the site lists most recent first)
type Meeting struct {
	Date       string `json:"date,omitempty"`
	Tournament string `json:"tournament,omitempty"`
	Winner     string `json:"winner,omitempty"`
	Score      string `json:"score,omitempty"`
}

// H2H summarizes the head-to-head history between two players
type H2H struct {
	WinsA    int       `json:"winsA"`
	WinsB    int       `json:"winsB"`
	Meetings []Meeting `json:"meetings"`
}
