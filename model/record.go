package model

import (
	"fmt"
)

// DescSize is the capacity of the description field including the
// terminating NUL, so at most DescSize-1 bytes of text are kept.
const DescSize = 128

// Record is one campsite, stored in a fixed-width slot
type Record struct {
	Number      int32   // site number
	Description string  // a short description
	HasElectric bool    // is power available?
	Rate        float64 // per-night rate
}

func NewRecord(number int32, description string, hasElectric bool, rate float64) *Record {
	r := &Record{
		Number:      number,
		HasElectric: hasElectric,
		Rate:        rate,
	}
	r.SetDescription(description)
	return r
}

// SetDescription keeps at most DescSize-1 bytes of description
func (r *Record) SetDescription(description string) {
	r.Description = TruncateDescription(description)
}

// TruncateDescription cuts s to the field capacity, stopping at the
// first NUL since the slot can not carry one inside the text
func TruncateDescription(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			s = s[:i]
			break
		}
	}
	if len(s) > DescSize-1 {
		s = s[:DescSize-1]
	}
	return s
}

// String renders the record in the screen friendly listing format:
// <number> [E]<description> \t($<rate>)
func (r *Record) String() string {
	electric := "[ ]"
	if r.HasElectric {
		electric = "[E]"
	}
	return fmt.Sprintf("%d %s%s \t($%.2f)", r.Number, electric, r.Description, r.Rate)
}
