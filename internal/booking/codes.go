package booking

import (
	"math/rand/v2"
	"strings"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// newReservationCode draws 6-character uppercase alphanumeric codes until
// exists reports a free one. The keyspace is 36^6 so collisions are rare;
// the loop is unbounded on purpose rather than failing a booking over an
// unlucky draw.
func newReservationCode(exists func(code string) (bool, error)) (string, error) {
	var b strings.Builder
	for {
		b.Reset()
		for i := 0; i < codeLength; i++ {
			b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
		}
		code := b.String()
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
}
