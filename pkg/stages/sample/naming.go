package sample

import (
	"fmt"
	"strconv"
)

// PadWidth returns the number of digits needed for the highest sequence index
// a run is expected to produce, total/step. It is at least 1.
func PadWidth(total, step int) int {
	if step < 1 || total <= 0 {
		return 1
	}
	return len(strconv.Itoa(total / step))
}

// FileName returns the name of the seq-th kept frame, zero-padded to width.
// Indices wider than width are written in full.
func FileName(seq, width int, ext string) string {
	return fmt.Sprintf("frame_%0*d.%s", width, seq, ext)
}
