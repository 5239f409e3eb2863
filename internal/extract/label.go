package extract

// Label classifies a move by how much it changed the engine evaluation.
type Label string

const (
	LabelGood       Label = "good"
	LabelInaccuracy Label = "inaccuracy"
	LabelBlunder    Label = "blunder"
)

// LabelFor maps an evaluation delta (previous minus current, from White's
// perspective; positive means White's position worsened) to a label.
// Deltas exactly at a threshold are inaccuracies.
func LabelFor(delta, goodBelow, blunderAbove int) Label {
	switch {
	case delta < goodBelow:
		return LabelGood
	case delta > blunderAbove:
		return LabelBlunder
	default:
		return LabelInaccuracy
	}
}
