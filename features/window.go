package features

import "github.com/jamesainslie/go-sbd/textview"

// Window geometry: two tokens of left context, the current token and one
// token of right context.
const (
	Left  = 2
	Right = 1
	Size  = Left + 1 + Right
)

// Offsets lists every context offset from the leftmost to the rightmost.
var Offsets = [Size]int{-2, -1, 0, 1}

// Window is the sliding token context. It is a plain value; copying it
// takes a snapshot.
type Window struct {
	slots [Size]textview.View
}

// At returns the token at offset, -Left <= offset <= Right. Unfilled slots
// hold the empty view.
func (w *Window) At(offset int) textview.View {
	return w.slots[Left+offset]
}

// Push shifts every token one place left and stores tok at offset +1.
func (w *Window) Push(tok textview.View) {
	copy(w.slots[:], w.slots[1:])
	w.slots[Size-1] = tok
}

// ClearLeftAndCurrent empties offsets -2, -1 and 0.
func (w *Window) ClearLeftAndCurrent() {
	for i := 0; i <= Left; i++ {
		w.slots[i] = textview.View{}
	}
}

// Slot converts an offset to a dense index in [0, Size).
func Slot(offset int) int {
	return Left + offset
}
