package oram

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const lowercaseLetters = "abcdefghijklmnopqrstuvwxyz"

// randIntn returns a cryptographically secure random integer in [0, n).
func randIntn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("oram: randIntn called with non-positive bound %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("oram: failed to generate random int: %w", err)
	}
	return int(v.Int64()), nil
}

// randIntRange returns a cryptographically secure random integer in
// [min, max], inclusive on both ends.
func randIntRange(min, max int) (int, error) {
	if max < min {
		return 0, fmt.Errorf("oram: randIntRange called with max %d < min %d", max, min)
	}
	offset, err := randIntn(max - min + 1)
	if err != nil {
		return 0, err
	}
	return min + offset, nil
}

// randBit returns 0 or 1 with equal probability.
func randBit() (int, error) {
	return randIntn(2)
}

// randLowercase returns a random lowercase ASCII string of the given length.
func randLowercase(n int) (string, error) {
	b := make([]byte, n)
	for i := range b {
		idx, err := randIntn(len(lowercaseLetters))
		if err != nil {
			return "", err
		}
		b[i] = lowercaseLetters[idx]
	}
	return string(b), nil
}

// randDistinctPair returns two distinct integers in [0, n). When n == 1 it
// degrades to returning (0, 0) rather than looping forever.
func randDistinctPair(n int) (int, int, error) {
	first, err := randIntn(n)
	if err != nil {
		return 0, 0, err
	}
	if n <= 1 {
		return first, first, nil
	}
	second, err := randIntn(n)
	if err != nil {
		return 0, 0, err
	}
	for second == first {
		second, err = randIntn(n)
		if err != nil {
			return 0, 0, err
		}
	}
	return first, second, nil
}
