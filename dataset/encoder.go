package dataset

// Encoder assigns consecutive integer codes to strings in first-seen order.
type Encoder struct {
	codes  map[string]int
	values []string
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{codes: make(map[string]int)}
}

// Encode returns the code of v, assigning the next one if v is new.
func (e *Encoder) Encode(v string) int {
	if c, ok := e.codes[v]; ok {
		return c
	}
	c := len(e.values)
	e.codes[v] = c
	e.values = append(e.values, v)
	return c
}

// Decode returns the string behind code c.
func (e *Encoder) Decode(c int) (string, bool) {
	if c < 0 || c >= len(e.values) {
		return "", false
	}
	return e.values[c], true
}

// Values returns the encoded strings indexed by code.
func (e *Encoder) Values() []string {
	return append([]string(nil), e.values...)
}

// Len returns the number of distinct values seen.
func (e *Encoder) Len() int { return len(e.values) }
