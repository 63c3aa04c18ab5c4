package scoring

// Band is a qualitative tier for a 0–100 relevance-style number.
// It only drives display; it never feeds back into points.
type Band string

const (
	BandHigh    Band = "high"
	BandMedium  Band = "medium"
	BandLow     Band = "low"
	BandMinimal Band = "minimal"
)

// BandOf maps a task's raw relevance score to its band.
// Not meant for the aggregate daily score.
func BandOf(score int) Band {
	switch {
	case score >= 80:
		return BandHigh
	case score >= 50:
		return BandMedium
	case score >= 20:
		return BandLow
	default:
		return BandMinimal
	}
}

var bandColors = map[Band]string{
	BandHigh:    "#22c55e",
	BandMedium:  "#eab308",
	BandLow:     "#f97316",
	BandMinimal: "#ef4444",
}

// Color returns the hex color the client paints the band with.
func (b Band) Color() string {
	if c, ok := bandColors[b]; ok {
		return c
	}
	return bandColors[BandMinimal]
}
