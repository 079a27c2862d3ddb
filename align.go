// align.go - allocation granularity arithmetic
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package mapped

// alignDown rounds off down to the previous multiple of gran and
// returns the rounded offset along with the slack between the two.
// The slack is what separates the start of the OS mapping from the
// first byte the caller asked for; 0 <= delta < gran.
func alignDown(off, gran int64) (aligned, delta int64) {
	aligned = off - (off % gran)
	delta = off - aligned
	return aligned, delta
}
