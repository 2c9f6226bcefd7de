package fecho

import "iter"

// Take yields at most limit lines from seq, in order. A limit of zero or less
// yields everything. Once the limit is reached seq is not pulled again, so a
// file source stops reading at that point.
func Take(seq iter.Seq2[string, error], limit int) iter.Seq2[string, error] {
	if limit <= 0 {
		return seq
	}
	return func(yield func(string, error) bool) {
		taken := 0
		for line, err := range seq {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(line, nil) {
				return
			}
			taken++
			if taken == limit {
				return
			}
		}
	}
}
