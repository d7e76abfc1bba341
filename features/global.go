package features

// Global is a boolean indicator computed from the shape of the context
// tokens. Values are persisted by position; never reorder them.
type Global int

// Global indicators. PrevPrevAbbrev, PrevAbbrev and NextAbbrev keep their
// slots in saved models but nothing sets them.
const (
	PrevPrevCap Global = iota
	PrevPrevDigits
	PrevPrevAbbrev
	PrevPrevYear
	PrevCap
	PrevDigits
	PrevAbbrev
	PrevYear
	NextCap
	NextDigits
	NextAbbrev
	NextYear
	Initials
	FirstInitial
	PrevCapDotCap

	NumGlobal int = iota
)

var globalNames = [NumGlobal]string{
	"prevPrevCap", "prevPrevDigits", "prevPrevAbbrev", "prevPrevYear",
	"prevCap", "prevDigits", "prevAbbrev", "prevYear",
	"nextCap", "nextDigits", "nextAbbrev", "nextYear",
	"initials", "firstInitial", "prevCapDotCap",
}

func (g Global) String() string {
	if g < 0 || int(g) >= NumGlobal {
		return "unknown"
	}
	return globalNames[g]
}
