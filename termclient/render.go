package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	worldW = 1200.0
	worldH = 600.0

	playerW = 50.0
	playerH = 50.0
	enemyW  = 40.0
	enemyH  = 40.0
	bossW   = 150.0
	bossH   = 150.0

	hudRows = 1 // top line
)

var (
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleShielded = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBoss     = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleRage     = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleShot     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleVolatile = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleBlock    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePowerUp  = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleOverlay  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// viewport maps world coordinates onto the terminal grid below the HUD
type viewport struct {
	cols, rows int
}

func (v viewport) cell(x, y float64) (int, int) {
	h := v.rows - hudRows - 1
	if h < 1 {
		h = 1
	}
	cx := int(x / worldW * float64(v.cols))
	cy := int(y/worldH*float64(h)) + hudRows
	return cx, cy
}

// span returns the cells a world rectangle covers, at least one in each direction
func (v viewport) span(x, y, w, h float64) (x0, y0, x1, y1 int) {
	x0, y0 = v.cell(x, y)
	x1, y1 = v.cell(x+w, y+h)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func fillRect(s tcell.Screen, x0, y0, x1, y1 int, r rune, style tcell.Style) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.SetContent(x, y, r, nil, style)
		}
	}
}

// drawFrame paints one frame and the HUD
func drawFrame(s tcell.Screen, f *Frame, score int) {
	cols, rows := s.Size()
	v := viewport{cols: cols, rows: rows}

	for _, b := range f.Barricades {
		for _, r := range b {
			x0, y0, x1, y1 := v.span(r.X, r.Y, r.W, r.H)
			fillRect(s, x0, y0, x1, y1, '▒', styleBlock)
		}
	}
	for _, e := range f.Enemies {
		x0, y0, x1, y1 := v.span(e.X, e.Y, enemyW, enemyH)
		fillRect(s, x0, y0, x1, y1, 'W', styleEnemy)
	}
	if f.Boss != nil && f.Boss.Health > 0 {
		style := styleBoss
		if f.Boss.Rage {
			style = styleRage
		}
		x0, y0, x1, y1 := v.span(f.Boss.X, f.Boss.Y, bossW, bossH)
		fillRect(s, x0, y0, x1, y1, '█', style)
	}
	for _, p := range f.PowerUps {
		x, y := v.cell(p.X, p.Y)
		r := 'S'
		if p.K == 1 {
			r = 'T'
		}
		s.SetContent(x, y, r, nil, stylePowerUp)
	}
	for _, p := range f.Projectiles {
		x, y := v.cell(p.X, p.Y)
		switch {
		case p.K == KindVolatile:
			s.SetContent(x, y, '*', nil, styleVolatile)
		case p.O == OwnerPlayer:
			s.SetContent(x, y, '|', nil, styleShot)
		default:
			s.SetContent(x, y, '•', nil, styleShot)
		}
	}
	style := stylePlayer
	if f.Player.Inv {
		style = styleShielded
	}
	x0, y0, x1, y1 := v.span(f.Player.X, f.Player.Y, playerW, playerH)
	fillRect(s, x0, y0, x1, y1, '▲', style)

	drawText(s, 0, 0, styleHUD, hudLine(f, score))
}

// hudLine is the one-line status shown above the playfield
func hudLine(f *Frame, score int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SCORE %d  LIVES %d", score, f.Player.Lives)
	switch {
	case f.Boss != nil:
		fmt.Fprintf(&b, "  BOSS %d/%d  PHASE %d", f.Boss.Health, f.Boss.Max, f.Boss.Phase)
		if f.Boss.Rage {
			b.WriteString("  RAGE")
		}
	default:
		fmt.Fprintf(&b, "  WAVE %d", f.Wave)
	}
	if f.TripleShot > 0 {
		fmt.Fprintf(&b, "  TRIPLE %.0fs", f.TripleShot)
	}
	if f.Shield > 0 {
		fmt.Fprintf(&b, "  SHIELD %.0fs", f.Shield)
	}
	if f.Paused {
		b.WriteString("  [PAUSED]")
	}
	if f.State == "boss_intro" {
		b.WriteString("  press any key")
	}
	return b.String()
}

// drawBox draws lines centred on screen over a solid background
func drawBox(s tcell.Screen, lines []string) {
	cols, rows := s.Size()
	w := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	x := (cols - w - 4) / 2
	y := (rows - len(lines) - 2) / 2
	fillRect(s, x, y, x+w+4, y+len(lines)+2, ' ', styleOverlay)
	for i, l := range lines {
		drawText(s, x+2, y+1+i, styleOverlay, l)
	}
}

func quizLines(q *QuizMsg, remaining float64) []string {
	lines := []string{"SECURITY QUESTION", "", q.Question, ""}
	for i, o := range q.Options {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, o))
	}
	return append(lines, "", fmt.Sprintf("press 1-%d  (%.0fs)", len(q.Options), remaining))
}

func skillLines(sk *SkillMsg, typed string, remaining float64) []string {
	lines := []string{"FIREWALL BREACH: find the hidden word", ""}
	for _, r := range sk.Rows {
		lines = append(lines, strings.Join(strings.Split(r, ""), " "))
	}
	return append(lines, "", "> "+typed+"_", fmt.Sprintf("enter to submit  (%.0fs)", remaining))
}

func drawStatus(s tcell.Screen, msg string) {
	_, rows := s.Size()
	drawText(s, 0, rows-1, styleStatus, msg)
}
