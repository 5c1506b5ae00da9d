package test

import (
	"math/rand"
	"sync"
	"time"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomCNPJ returns a tax id with valid check digits.
func RandomCNPJ() string {
	digits := make([]int, 14)
	for i := 0; i < 8; i++ {
		digits[i] = randomIntn(10)
	}
	// headquarters branch 0001
	digits[11] = 1
	digits[12] = cnpjCheckDigit(digits[:12])
	digits[13] = cnpjCheckDigit(digits[:13])

	buf := make([]byte, len(digits))
	for i, d := range digits {
		buf[i] = byte('0' + d)
	}
	return string(buf)
}

func cnpjCheckDigit(digits []int) int {
	weight := len(digits) - 7
	sum := 0
	for _, d := range digits {
		sum += d * weight
		weight--
		if weight < 2 {
			weight = 9
		}
	}
	if rest := sum % 11; rest >= 2 {
		return 11 - rest
	}
	return 0
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
