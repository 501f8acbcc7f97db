package charts

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetPixelBrailleBits(t *testing.T) {
	cv := NewCanvas(2, 1)
	// top-left micro-pixel of the first cell
	cv.SetPixel(0, 0, "")
	lines := cv.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if r := []rune(lines[0])[0]; r != rune(0x2801) {
		t.Errorf("rune = %U, want U+2801", r)
	}
	// bottom-right micro-pixel of the same cell adds bit 0x80
	cv.SetPixel(1, 3, "")
	if r := []rune(cv.Lines()[0])[0]; r != rune(0x2881) {
		t.Errorf("rune = %U, want U+2881", r)
	}
}

func TestSetPixelOutOfBounds(t *testing.T) {
	cv := NewCanvas(2, 2)
	cv.SetPixel(-1, 0, "")
	cv.SetPixel(0, -2, "")
	cv.SetPixel(100, 100, "")
	for _, line := range cv.Lines() {
		if strings.TrimSpace(line) != "" {
			t.Fatalf("out-of-bounds pixel drew something: %q", line)
		}
	}
}

func TestLineEndpoints(t *testing.T) {
	cv := NewCanvas(4, 2)
	cv.Line(0, 0, 7, 7, "")
	lines := cv.Lines()
	if []rune(lines[0])[0] == ' ' {
		t.Error("start cell empty")
	}
	if []rune(lines[1])[3] == ' ' {
		t.Error("end cell empty")
	}
}

func TestFillRingInterior(t *testing.T) {
	cv := NewCanvas(4, 2)
	ring := [][2]int{{0, 0}, {7, 0}, {7, 7}, {0, 7}}
	cv.FillRing(ring, "")
	for y, line := range cv.Lines() {
		for x, r := range []rune(line) {
			if r == ' ' {
				t.Errorf("cell (%d,%d) not filled", x, y)
			}
		}
	}
}

func TestFillRingDegenerate(t *testing.T) {
	cv := NewCanvas(4, 2)
	cv.FillRing([][2]int{{0, 0}, {5, 5}}, "")
	for _, line := range cv.Lines() {
		if strings.TrimSpace(line) != "" {
			t.Fatal("two-point ring should draw nothing")
		}
	}
}

func TestLabelOverwritesBraille(t *testing.T) {
	cv := NewCanvas(6, 1)
	cv.Line(0, 0, 11, 0, "")
	cv.Label(1, 0, "ab", "")
	row := []rune(cv.Lines()[0])
	if row[1] != 'a' || row[2] != 'b' {
		t.Errorf("label not placed: %q", string(row))
	}
}

func TestLabelClipped(t *testing.T) {
	cv := NewCanvas(3, 1)
	cv.Label(2, 0, "xyz", "")
	cv.Label(0, 5, "off", "")
	row := []rune(cv.Lines()[0])
	if row[2] != 'x' {
		t.Errorf("first label rune missing: %q", string(row))
	}
	if len(row) != 3 {
		t.Errorf("row widened to %d cells", len(row))
	}
}

func TestLinesColorChunks(t *testing.T) {
	cv := NewCanvas(4, 1)
	cv.SetPixel(0, 0, lipgloss.Color("#FF0000"))
	cv.SetPixel(2, 0, lipgloss.Color("#FF0000"))
	line := cv.Lines()[0]
	if !strings.Contains(line, "\x1b[") {
		t.Skip("no color profile in test environment")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("broadband", 5); got != "broa…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ok", 5); got != "ok" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("x", 0); got != "" {
		t.Errorf("truncate zero = %q", got)
	}
}

func TestPlaceholderSize(t *testing.T) {
	out := Placeholder("nothing here", 30, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Errorf("placeholder height = %d, want 5", len(lines))
	}
	if !strings.Contains(out, "nothing here") {
		t.Error("placeholder message missing")
	}
}
