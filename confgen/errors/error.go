package errors

// All ranges inclusive
type Span struct {
	Start    Location `json:"start"`
	End      Location `json:"end"`
	Filename string   `json:"filename"`
}

type Location struct {
	Line   uint `json:"line"`
	Column uint `json:"column"`
	Index  uint `json:"index"`
}

func (self Location) Until(end Location, filename string) Span {
	return Span{
		Start:    self,
		End:      end,
		Filename: filename,
	}
}

func NewLocation(line uint, column uint, index uint) Location {
	return Location{
		Line:   line,
		Column: column,
		Index:  index,
	}
}
