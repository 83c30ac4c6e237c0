package deduce

// Cell is the tri-state fact for one witness and one guessed card.
type Cell int8

const (
	// LacksUnresolved is accepted as input only; it is stored as Lacks.
	LacksUnresolved Cell = -2
	Lacks           Cell = -1
	Unknown         Cell = 0
	Has             Cell = 1
)

func (c Cell) valid() bool {
	return c >= LacksUnresolved && c <= Has
}

func (c Cell) normalize() Cell {
	if c == LacksUnresolved {
		return Lacks
	}
	return c
}

func (c Cell) String() string {
	switch c {
	case LacksUnresolved:
		return "lacks?"
	case Lacks:
		return "lacks"
	case Unknown:
		return "unknown"
	case Has:
		return "has"
	}
	return "invalid"
}

// Flags summarise what a mutation changed.
type Flags struct {
	// SolvedChanged is set when the number of Has cells grew.
	SolvedChanged bool
	// StruckChanged is set when the number of Lacks cells grew.
	StruckChanged bool
	// UniqueRemaining is set when every player has answered the guess and
	// fewer than three witnesses hold its cards, so the players who are not
	// listed must hold whatever is left. The grid does not act on it.
	UniqueRemaining bool
}

// Any reports whether any flag is set.
func (f Flags) Any() bool {
	return f.SolvedChanged || f.StruckChanged || f.UniqueRemaining
}

// tally counts cell values along one row or column.
type tally struct {
	has, lacks, unknown int
}

func (t *tally) add(c Cell) {
	switch c {
	case Has:
		t.has++
	case Lacks:
		t.lacks++
	default:
		t.unknown++
	}
}

func (t tally) sum() int {
	return t.has - t.lacks
}
