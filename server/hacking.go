package main

import (
	"math/rand"
	"strings"
)

const HackingGridSize = 8

const hackingChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

var hackingWords = []string{"SECURE", "ACCESS", "SYSTEM", "DEFEND", "SHIELD"}

// HackingPuzzle is a letter grid with one security word hidden on a row
type HackingPuzzle struct {
	Rows []string `json:"rows"`
	Word string   `json:"-"`
}

// NewHackingPuzzle fills a grid with noise and hides a random word horizontally
func NewHackingPuzzle(rng *rand.Rand) HackingPuzzle {
	word := hackingWords[rng.Intn(len(hackingWords))]
	grid := make([][]byte, HackingGridSize)
	for r := range grid {
		grid[r] = make([]byte, HackingGridSize)
		for c := range grid[r] {
			grid[r][c] = hackingChars[rng.Intn(len(hackingChars))]
		}
	}
	row := rng.Intn(HackingGridSize)
	col := rng.Intn(HackingGridSize - len(word) + 1)
	copy(grid[row][col:], word)

	rows := make([]string, HackingGridSize)
	for r := range grid {
		rows[r] = string(grid[r])
	}
	return HackingPuzzle{Rows: rows, Word: word}
}

// Check reports whether the answer names the hidden word
func (p HackingPuzzle) Check(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), p.Word)
}
