package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dividash/internal/state"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && r.h > 0 && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// layoutRects names every interactive area of the current frame. A
// zero rect means the area is not on screen; mouse routing and View
// must compute the same geometry or clicks land in the wrong chart.
type layoutRects struct {
	mapR     rect
	barsR    rect
	entityR  rect
	compareR rect
	radarR   rect
	pcpR     rect
}

func (m Model) contentHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 4 {
		h = 4
	}
	return h
}

const (
	headerHeight = 1
	footerHeight = 2
)

func (m Model) regionalView() bool {
	return m.showRegional || m.st.ActiveRegion != ""
}

func (m Model) advancedView() bool {
	return !m.regionalView() && m.st.Viz == state.Advanced
}

func (m Model) layout() layoutRects {
	var lay layoutRects
	cw := m.width
	if cw < 40 {
		cw = 40
	}
	ch := m.contentHeight()

	switch {
	case m.regionalView():
		mapW := cw * 3 / 5
		lay.mapR = rect{0, headerHeight, mapW, ch}
		lay.compareR = rect{mapW + 1, headerHeight, cw - mapW - 1, ch}
	case m.advancedView():
		topH := ch / 2
		half := cw / 2
		lay.radarR = rect{0, headerHeight, half, topH}
		lay.compareR = rect{half + 1, headerHeight, cw - half - 1, topH}
		lay.pcpR = rect{0, headerHeight + topH, cw, ch - topH}
	default:
		mapW := cw * 3 / 5
		rightH := ch / 2
		lay.mapR = rect{0, headerHeight, mapW, ch}
		lay.barsR = rect{mapW + 1, headerHeight, cw - mapW - 1, rightH}
		lay.entityR = rect{mapW + 1, headerHeight + rightH, cw - mapW - 1, ch - rightH}
	}
	return lay
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.fatal != nil {
		msg := errStyle.Render("dividash: "+m.fatal.Error()) + "\n\n" +
			dimStyle.Render("press any key to exit")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}
	if m.loading() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("loading data and boundaries"))
	}

	cw := m.width
	if cw < 40 {
		cw = 40
	}
	lay := m.layout()

	header := titleStyle.Render(" dividash ─ digital divide by state ")
	header += dimStyle.Render(" " + m.st.ActiveMetric)
	header = lipgloss.NewStyle().Width(cw).Render(header)

	var body string
	switch {
	case m.showTable:
		m.tbl.SetWidth(cw - 4)
		m.tbl.SetHeight(min(m.contentHeight()-2, 24))
		body = lipgloss.Place(cw, m.contentHeight(), lipgloss.Center, lipgloss.Center,
			boxStyle.Render(m.tbl.View()))
	case m.showPicker:
		m.picker.SetSize(32, m.contentHeight()-2)
		picker := boxStyle.Render(m.picker.View())
		body = lipgloss.Place(cw, m.contentHeight(), lipgloss.Center, lipgloss.Center, picker)
	case m.regionalView():
		left := m.regional.Render(m.fs, m.ds, m.st.ActiveMetric, m.st.ActiveRegion, lay.mapR.w, lay.mapR.h)
		right := m.compare.Render(m.st, lay.compareR.w, lay.compareR.h)
		body = lipgloss.JoinHorizontal(lipgloss.Top, sized(left, lay.mapR), " ", sized(right, lay.compareR))
	case m.advancedView():
		radar := m.radar.Render(m.st, lay.radarR.w, lay.radarR.h)
		compare := m.compare.Render(m.st, lay.compareR.w, lay.compareR.h)
		top := lipgloss.JoinHorizontal(lipgloss.Top, sized(radar, lay.radarR), " ", sized(compare, lay.compareR))
		pcp := m.pcp.Render(m.st, lay.pcpR.w, lay.pcpR.h)
		body = lipgloss.JoinVertical(lipgloss.Left, top, sized(pcp, lay.pcpR))
	default:
		left := m.choro.Render(m.fs, m.ds, m.st, lay.mapR.w, lay.mapR.h)
		bars := m.bars.Render(m.st, lay.barsR.w, lay.barsR.h)
		entity := m.entity.Render(m.ds, m.st, lay.entityR.w, lay.entityR.h)
		right := lipgloss.JoinVertical(lipgloss.Left, sized(bars, lay.barsR), sized(entity, lay.entityR))
		body = lipgloss.JoinHorizontal(lipgloss.Top, sized(left, lay.mapR), " ", right)
	}

	footer := m.renderFooter(cw)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(cw).Height(m.height).Render(ui)
}

// sized pins a chart's string into its layout rect so the mouse math
// in Update stays honest.
func sized(s string, r rect) string {
	return lipgloss.NewStyle().Width(r.w).Height(r.h).MaxWidth(r.w).MaxHeight(r.h).Render(s)
}

func (m Model) renderFooter(cw int) string {
	status := dimStyle.Render(" " + m.status + " ")
	if m.searching {
		status = activeStyle.Render(" search: ") + m.search.View()
	}
	line1 := lipgloss.NewStyle().Width(cw).Render(status)
	line2 := ""
	if m.helpVisible {
		keys := []string{
			"↑↓←→ pan",
			"+/- zoom",
			"0 reset",
			"click select",
			"m mode",
			"v charts",
			"r regions",
			"Tab metrics",
			"/ find",
			"a table",
			"s sort",
			"c clear",
			"x/g export",
			"h help",
			"q quit",
		}
		line2 = dimStyle.Render("  " + strings.Join(keys, "  "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, line1, lipgloss.NewStyle().Width(cw).Render(line2))
}
