// Package verify compares byte streams.
package verify

import (
	"bufio"
	"io"
)

// ContentsEqual reads a and b one byte at a time and reports whether they
// hold exactly the same bytes. Streams of different length are never equal.
// Read errors other than io.EOF are returned.
func ContentsEqual(a, b io.Reader) (bool, error) {
	ra := buffered(a)
	rb := buffered(b)

	for {
		ca, errA := ra.ReadByte()
		if errA != nil && errA != io.EOF {
			return false, errA
		}
		cb, errB := rb.ReadByte()
		if errB != nil && errB != io.EOF {
			return false, errB
		}

		endA, endB := errA == io.EOF, errB == io.EOF
		if endA || endB {
			return endA && endB, nil
		}
		if ca != cb {
			return false, nil
		}
	}
}

func buffered(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}
