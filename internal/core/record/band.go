package record

// Band is the display classification of a confidence score
type Band string

// Band values; BandNone means no score was reported for the field
const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
	BandNone   Band = "none"
)

// BandOf classifies c: High at 0.8 and above, Medium at 0.6 and above, Low below
func BandOf(c float64) Band {
	switch {
	case c >= 0.8:
		return BandHigh
	case c >= 0.6:
		return BandMedium
	default:
		return BandLow
	}
}

// String returns the wire form of the band
func (b Band) String() string { return string(b) }
