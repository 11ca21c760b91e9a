package charlie

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/compulsive-charlie/internal/core"
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
	"github.com/vovakirdan/compulsive-charlie/internal/rhythm"
)

// Layout of the rhythm view.
const (
	hudRows   = 2
	footRows  = 2
	hitX      = 10 // column of the hit line
	playerX   = 6
	minScreen = 40
)

const (
	charPlayer = '@'
	charHit    = '┃'
	charBeam   = '·'
	charEdge   = '─'
)

var noteStyle = map[emotion.Type]struct {
	r rune
	c core.Color
}{
	emotion.None:        {'●', core.ColorBrightGreen},
	emotion.Anxiety:     {'▼', core.ColorBrightYellow},
	emotion.Frustration: {'▶', core.ColorBrightRed},
	emotion.Despair:     {'◀', core.ColorBrightBlue},
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreen || dst.Height() < 12 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}
	if g.dir == nil {
		msg := "Run failed to start"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCenteredColor(dst.Height()/2, msg, core.ColorRed)
		return
	}

	g.renderHUD(dst)
	switch g.Phase() {
	case PhaseRhythm:
		g.renderRhythm(dst)
	case PhaseThoughtMenu:
		g.renderThoughtMenu(dst)
	case PhasePlatformSelect:
		g.renderPlatformSelect(dst)
	case PhaseGameOver:
		g.renderGameOver(dst)
	}

	if g.msgTimer > 0 {
		dst.DrawTextCenteredColor(dst.Height()-footRows, g.message, core.ColorOrange)
	}
	if g.dir.Tutorials().Active() {
		g.renderTutorial(dst)
	} else if g.paused {
		g.drawPanel(dst, "PAUSED", []string{"Press P to resume"}, core.ColorWhite)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	st := g.dir.State()
	x := 1
	x = drawLabel(dst, x, 0, fmt.Sprintf("Step %d", st.TimeSteps), core.ColorWhite)
	x = drawLabel(dst, x, 0, fmt.Sprintf("Energy %d/%d", st.Energy, st.EnergyCap), core.ColorBrightGreen)
	x = drawLabel(dst, x, 0, fmt.Sprintf("Combo %d", st.Combo), core.ColorCyan)
	drawLabel(dst, x, 0, fmt.Sprintf("Score %d", g.dir.Score()), core.ColorBrightWhite)

	x = 1
	x = drawLabel(dst, x, 1, fmt.Sprintf("Anxiety %d", st.Emotions.Anxiety), noteStyle[emotion.Anxiety].c)
	x = drawLabel(dst, x, 1, fmt.Sprintf("Frustration %d", st.Emotions.Frustration), noteStyle[emotion.Frustration].c)
	x = drawLabel(dst, x, 1, fmt.Sprintf("Despair %d", st.Emotions.Despair), noteStyle[emotion.Despair].c)
	if a := st.CurrentActivity(); a != nil {
		drawLabel(dst, x, 1, a.Name, core.ColorGray)
	}
}

func drawLabel(dst *core.Screen, x, y int, text string, c core.Color) int {
	dst.DrawTextColor(x, y, text, c)
	return x + len([]rune(text)) + 3
}

// renderRhythm draws the lane: notes travel from the right edge toward
// the hit line, the beam is the band around the middle row.
func (g *Game) renderRhythm(dst *core.Screen) {
	top := hudRows
	bottom := dst.Height() - footRows
	mid := (top + bottom) / 2
	half := float64(bottom-top) / 2

	rc := g.settings.Rhythm
	scaleX := float64(dst.Width()-hitX-2) / rc.TravelDist
	scaleY := half / (rc.TravelDist / 2)

	beam := g.dir.Engine().Beam()
	beamRows := int(math.Round(beam.Width / 2 * scaleY))
	for y := mid - beamRows; y <= mid+beamRows; y++ {
		if y <= top || y >= bottom {
			continue
		}
		r := charBeam
		if y == mid-beamRows || y == mid+beamRows {
			r = charEdge
		}
		dst.DrawHLine(hitX+1, y, dst.Width()-hitX-1, r, core.ColorGray)
	}
	dst.DrawVLine(hitX, top, bottom-top, charHit, core.ColorWhite)
	dst.SetWithColor(playerX, mid, charPlayer, core.ColorBrightWhite)

	for _, n := range g.dir.Engine().Notes() {
		sx := hitX + int(math.Round(n.X*scaleX))
		sy := mid - int(math.Round(n.Y*scaleY))
		if sy <= top || sy >= bottom {
			continue
		}
		s := noteStyle[n.Type]
		dst.SetWithColor(sx, sy, s.r, s.c)
	}

	if g.flashTimer > 0 {
		dst.DrawTextColor(hitX-len(g.flash.String())/2, mid+beamRows+2, strings.ToUpper(g.flash.String()), outcomeColor(g.flash))
	}

	hints := "↑ energy   ↓ anxiety   → frustration   ← despair   P pause"
	dst.DrawTextCenteredColor(dst.Height()-1, hints, core.ColorGray)
}

func outcomeColor(o rhythm.Outcome) core.Color {
	switch o {
	case rhythm.Hit, rhythm.AutoHit:
		return core.ColorBrightGreen
	case rhythm.Miss:
		return core.ColorBrightRed
	default:
		return core.ColorYellow
	}
}

func (g *Game) renderThoughtMenu(dst *core.Screen) {
	offered := g.dir.Offered()
	lines := make([]string, 0, len(offered)+3)
	for i, t := range offered {
		lines = append(lines, menuLine(i == g.cursor, fmt.Sprintf("%s (%d energy)", t.Name, t.EnergyCost)))
	}
	lines = append(lines, menuLine(g.cursor == len(offered), "Just jump"))

	if g.cursor < len(offered) && offered[g.cursor].Description != "" {
		lines = append(lines, "")
		lines = append(lines, wrap(offered[g.cursor].Description, 40)...)
	}
	g.drawPanel(dst, "What are you thinking?", lines, core.ColorMagenta)
}

func (g *Game) renderPlatformSelect(dst *core.Screen) {
	st := g.dir.State()
	cur := st.CurrentY()
	lines := []string{fmt.Sprintf("Jump power %.1f", g.dir.JumpPower()), ""}
	for i, p := range g.Platforms() {
		label := fmt.Sprintf("%-14s %+3d", p.Activity.Name, p.Y-cur)
		if p.Activity.Is(g.dir.Profile().ScheduleAt(st.TimeSteps + 1)) {
			label += "  scheduled"
		}
		if !g.dir.Reachable(p) {
			label += "  out of reach"
		}
		lines = append(lines, menuLine(i == g.cursor, label))
	}
	if t := g.dir.ActiveThought(); t != nil {
		lines = append(lines, "", "Thinking: "+t.Name)
	}
	g.drawPanel(dst, "Where to next?", lines, core.ColorCyan)
}

func (g *Game) renderGameOver(dst *core.Screen) {
	r := g.dir.Recap()
	lines := []string{
		fmt.Sprintf("Score %d", r.Score),
		fmt.Sprintf("Steps %d   On schedule %d", r.Steps, r.SchedulePoints),
		fmt.Sprintf("Hits %d   Misses %d   Best combo %d", r.Hits, r.Misses, r.MaxCombo),
		fmt.Sprintf("Anxiety %d  Frustration %d  Despair %d", r.Emotions.Anxiety, r.Emotions.Frustration, r.Emotions.Despair),
		"",
		"Press R for a new day",
	}
	g.drawPanel(dst, "GOOD NIGHT", lines, core.ColorBrightYellow)
}

func (g *Game) renderTutorial(dst *core.Screen) {
	_, text, idx, total := g.dir.Tutorials().Page()
	lines := wrap(text, 44)
	lines = append(lines, "", fmt.Sprintf("(%d/%d)  Enter next  B back  X skip all", idx+1, total))
	g.drawPanel(dst, "TIP", lines, core.ColorBrightCyan)
}

func menuLine(selected bool, text string) string {
	if selected {
		return "> " + text
	}
	return "  " + text
}

// drawPanel draws a boxed, centered block of lines.
func (g *Game) drawPanel(dst *core.Screen, title string, lines []string, c core.Color) {
	w := len([]rune(title)) + 4
	for _, l := range lines {
		w = core.Max(w, len([]rune(l))+4)
	}
	w = core.Min(w, dst.Width())
	h := core.Min(len(lines)+4, dst.Height())

	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)
	dst.DrawTextColor(box.X+2, box.Y, " "+title+" ", c)
	for i, l := range lines {
		dst.DrawText(box.X+2, box.Y+2+i, l)
	}
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	n := 0
	for _, word := range strings.Fields(text) {
		wl := len([]rune(word))
		if n > 0 && n+1+wl > width {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
			n++
		}
		line.WriteString(word)
		n += wl
	}
	if n > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
