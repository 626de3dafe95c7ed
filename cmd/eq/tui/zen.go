package tui

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"eq/cmd/eq/ui"
)

// zenState drives the distraction-free pomodoro screen. The timer is
// independent of the task under it, so completing or skipping a task
// keeps the current session running.
type zenState struct {
	total     time.Duration
	remaining time.Duration

	breath    float64
	particles []particle
	rng       *rand.Rand
}

type particle struct {
	x, y  float64
	vy    float64
	glyph rune
}

var particleGlyphs = []rune{'·', '∙', '✦', '*'}

func newZenState(total time.Duration) *zenState {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	z := &zenState{
		total:     total,
		remaining: total,
		rng:       rng,
	}
	for i := 0; i < 24; i++ {
		z.particles = append(z.particles, z.spawnParticle(true))
	}
	return z
}

func (z *zenState) spawnParticle(anywhere bool) particle {
	y := 1.0
	if anywhere {
		y = z.rng.Float64()
	}
	return particle{
		x:     z.rng.Float64(),
		y:     y,
		vy:    0.02 + z.rng.Float64()*0.05,
		glyph: particleGlyphs[z.rng.Intn(len(particleGlyphs))],
	}
}

// advance moves the countdown and the animation.
func (z *zenState) advance(dt time.Duration) {
	z.remaining -= dt
	if z.remaining < 0 {
		z.remaining = 0
	}
	z.breath += dt.Seconds()
	for i := range z.particles {
		z.particles[i].y -= z.particles[i].vy * dt.Seconds() * 5
		if z.particles[i].y < 0 {
			z.particles[i] = z.spawnParticle(false)
		}
	}
}

func (z *zenState) reset(total time.Duration) {
	z.total = total
	z.remaining = total
}

func (z *zenState) done() bool { return z.remaining <= 0 }

// render paints the particle field with the task name, countdown and a
// breathing marker centered in the frame.
func (z *zenState) render(title string, width, height int, styles ui.Styles) string {
	if width < 20 {
		width = 20
	}
	if height < 8 {
		height = 8
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	for _, p := range z.particles {
		x := int(p.x * float64(width-1))
		y := int(p.y * float64(height-1))
		if y >= 0 && y < height && x >= 0 && x < width {
			grid[y][x] = p.glyph
		}
	}

	mid := height / 2
	placeCentered(grid[mid-2], title)

	var timer string
	if z.done() {
		timer = "session complete"
	} else {
		rem := z.remaining.Round(time.Second)
		timer = fmt.Sprintf("%02d:%02d", int(rem.Minutes()), int(rem.Seconds())%60)
	}
	placeCentered(grid[mid], timer)

	placeCentered(grid[mid+2], z.progressBar(width/2))

	// slow sine pulse as a breathing cue
	breathGlyph := "○"
	if math.Sin(z.breath/2) > 0 {
		breathGlyph = "●"
	}
	placeCentered(grid[mid+4], breathGlyph)

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteString("\n")
	}
	b.WriteString(styles.Help.Render("d done · s skip · x drop · r reset · esc leave"))
	return b.String()
}

func (z *zenState) progressBar(width int) string {
	if width < 10 {
		width = 10
	}
	frac := 0.0
	if z.total > 0 {
		frac = 1 - float64(z.remaining)/float64(z.total)
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

func placeCentered(row []rune, text string) {
	runes := []rune(text)
	if len(runes) > len(row) {
		runes = runes[:len(row)]
	}
	start := (len(row) - len(runes)) / 2
	for i, r := range runes {
		row[start+i] = r
	}
}
