package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/textbuf"
)

// render draws the visible lines and the status bar and positions the
// terminal cursor.
func (a *App) render() {
	w, h := a.screen.Size()
	if w == 0 || h < 2 {
		return
	}
	a.screen.Clear()

	viewHeight := h - 1
	cursor := a.engine.Cursor()
	a.scrollTo(cursor.Segment, viewHeight)

	for row := 0; row < viewHeight; row++ {
		line, ok := a.buf.Line(a.top + row)
		if !ok {
			a.screen.SetContent(0, row, '~', nil, tcell.StyleDefault.Dim(true))
			continue
		}
		a.drawLine(row, line, w)
	}

	a.drawStatusBar(w, h-1)

	col := a.displayColumn(cursor)
	a.screen.ShowCursor(col, cursor.Segment-a.top)
	a.screen.Show()
}

// scrollTo keeps the cursor line inside the viewport.
func (a *App) scrollTo(line, height int) {
	if line < a.top {
		a.top = line
	}
	if line >= a.top+height {
		a.top = line - height + 1
	}
	if a.top < 0 {
		a.top = 0
	}
}

// drawLine renders one buffer line, expanding tabs.
func (a *App) drawLine(row int, line string, width int) {
	style := tcell.StyleDefault
	x := 0
	for off := 0; off < len(line) && x < width; {
		if line[off] == '\t' {
			next := (x/a.cfg.TabWidth + 1) * a.cfg.TabWidth
			for ; x < next && x < width; x++ {
				a.screen.SetContent(x, row, ' ', nil, style)
			}
			off++
			continue
		}
		end := textbuf.NextGrapheme(line, off)
		cluster := []rune(line[off:end])
		cw := textbuf.DisplayWidth(line[off:end])
		if cw < 1 {
			cw = 1
		}
		a.screen.SetContent(x, row, cluster[0], cluster[1:], style)
		x += cw
		off = end
	}
}

// drawStatusBar renders the mode, file, pending keys, position, and
// message on the bottom row.
func (a *App) drawStatusBar(width, row int) {
	style := tcell.StyleDefault
	if a.cfg.Color {
		style = style.Background(modeColor(a.engine.Mode())).Foreground(tcell.ColorBlack)
	} else {
		style = style.Reverse(true)
	}

	left := " " + strings.ToUpper(a.engine.Mode().String()) + " "
	if a.engine.Mode() == mode.CommandLine {
		left += ":" + a.engine.CommandLine() + " "
	}
	file := a.opts.FilePath
	if file == "" {
		file = "[no name]"
	}
	left += " " + file
	if a.status != "" {
		left += "  " + a.status
	}

	cursor := a.engine.Cursor()
	right := a.engine.PendingKeys()
	if right != "" {
		right += "  "
	}
	right += fmt.Sprintf("%d:%d ", cursor.Segment+1, a.displayColumn(cursor)+1)

	for x := 0; x < width; x++ {
		a.screen.SetContent(x, row, ' ', nil, style)
	}
	for x, r := range []rune(left) {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, r, nil, style)
	}
	start := width - len([]rune(right))
	if start < 0 {
		start = 0
	}
	for i, r := range []rune(right) {
		if start+i >= width {
			break
		}
		a.screen.SetContent(start+i, row, r, nil, style)
	}
}

// displayColumn converts the cursor's byte offset into a screen column,
// honoring tab stops and wide characters.
func (a *App) displayColumn(p textbuf.Position) int {
	line, ok := a.buf.Line(p.Segment)
	if !ok {
		return 0
	}
	col := 0
	for off := 0; off < p.Offset && off < len(line); {
		if line[off] == '\t' {
			col = (col/a.cfg.TabWidth + 1) * a.cfg.TabWidth
			off++
			continue
		}
		end := textbuf.NextGrapheme(line, off)
		w := textbuf.DisplayWidth(line[off:end])
		if w < 1 {
			w = 1
		}
		col += w
		off = end
	}
	return col
}

// Mode colors for the status bar, muted so black text stays readable.
var modeColors = map[mode.Mode]colorful.Color{
	mode.Normal:      {R: 0.52, G: 0.67, B: 0.90},
	mode.Insert:      {R: 0.55, G: 0.83, B: 0.55},
	mode.Visual:      {R: 0.80, G: 0.62, B: 0.88},
	mode.VisualLine:  {R: 0.80, G: 0.62, B: 0.88},
	mode.VisualBlock: {R: 0.80, G: 0.62, B: 0.88},
	mode.CommandLine: {R: 0.91, G: 0.77, B: 0.48},
}

func modeColor(m mode.Mode) tcell.Color {
	c, ok := modeColors[m]
	if !ok {
		c = modeColors[mode.Normal]
	}
	return tcell.GetColor(c.Hex())
}
