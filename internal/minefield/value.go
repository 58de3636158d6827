package minefield

import "strconv"

// Value is what a cell holds once the field is set up: either [Mine] or the
// number of mines around it.
type Value int8

const Mine Value = -1

func (v Value) IsMine() bool {
	return v == Mine
}

// Count returns the neighbouring mine count; ok is false for a mine.
func (v Value) Count() (n int, ok bool) {
	if v.IsMine() {
		return 0, false
	}
	return int(v), true
}

func (v Value) String() string {
	if v.IsMine() {
		return "*"
	}
	return strconv.Itoa(int(v))
}
