package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// codeChars excludes ambiguous characters (0/O, 1/I/L) so codes can be
// read back over chat or phone.
const codeChars = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	MinCodeGroups   = 1
	MaxCodeGroups   = 8
	CodeGroupLength = 4
)

var (
	ErrTooFewGroups  = errors.New("code must have at least 1 group")
	ErrTooManyGroups = errors.New("code must have at most 8 groups")
)

// RedemptionCode generates a random redemption code of the form
// PF-XXXX-XXXX with the given number of four-character groups, using
// crypto/rand for every character.
func RedemptionCode(groups int) (string, error) {
	if groups < MinCodeGroups {
		return "", ErrTooFewGroups
	}
	if groups > MaxCodeGroups {
		return "", ErrTooManyGroups
	}

	parts := make([]string, 0, groups+1)
	parts = append(parts, "PF")

	buf := make([]byte, CodeGroupLength)
	for g := 0; g < groups; g++ {
		for i := range buf {
			ch, err := randChar(codeChars)
			if err != nil {
				return "", err
			}
			buf[i] = ch
		}
		parts = append(parts, string(buf))
	}

	return strings.Join(parts, "-"), nil
}

// randChar picks a random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
