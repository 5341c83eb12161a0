package main

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// GenerateUUID returns a random version 4 UUID used as a session ID
func GenerateUUID() string {
	return uuid.NewString()
}

// truncateRunes shortens s to at most n runes without splitting a character
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampNonNegative floors a counter at zero
func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

// round1 rounds to one decimal place for compact wire frames
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
