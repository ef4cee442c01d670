package ui

import (
	"image/color"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSS = `
/* overlay */
.inspector { background: #202020; width: 300px; height: 200; left: 10; top: 20; }
#title { color: #f00; }
@media screen { .ignored { color: #fff; } }
div > .nested { color: #fff; }
.inspector { border: #00ff0080; padding: 6px; }
.dock { left: 100%; top: 0; width: 320; height: 100%; }
`

func TestParseCSS(t *testing.T) {
	sheet, err := ParseCSS(testCSS)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 4)

	assert.Equal(t, ".inspector", sheet.Rules[0].Selector)
	assert.Equal(t, "#202020", sheet.Rules[0].Props["background"])
	assert.Equal(t, "300px", sheet.Rules[0].Props["width"])
	assert.Equal(t, "#title", sheet.Rules[1].Selector)
	assert.Equal(t, ".inspector", sheet.Rules[2].Selector)
	assert.Equal(t, ".dock", sheet.Rules[3].Selector)
	assert.Equal(t, "100%", sheet.Rules[3].Props["left"])
}

func TestParseHexColor(t *testing.T) {
	c, ok := ParseHexColor("#f80")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 255, G: 136, B: 0, A: 255}, c)

	c, ok = ParseHexColor("#10203040")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, c)

	_, ok = ParseHexColor("red")
	assert.False(t, ok)
	_, ok = ParseHexColor("#12345")
	assert.False(t, ok)
}

func TestLayoutMergesRules(t *testing.T) {
	sheet, err := ParseCSS(testCSS)
	require.NoError(t, err)

	panel := NewNode(Panel, "inspector", "", "")
	title := NewNode(Label, "", "title", "Inspector")
	styled := Layout(sheet, []*Node{panel, title}, 1000, 800)

	s := styled[0].Style
	assert.Equal(t, color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 255}, s.Background)
	assert.True(t, s.HasBorder)
	assert.Equal(t, uint8(0x80), s.Border.A)
	assert.Equal(t, int32(6), s.Padding)
	assert.Equal(t, Rect{X: 10, Y: 20, Width: 300, Height: 200}, panel.Bounds)

	assert.Equal(t, color.RGBA{R: 255, A: 255}, styled[1].Style.Color)
}

func TestLayoutPercentDock(t *testing.T) {
	sheet, err := ParseCSS(testCSS)
	require.NoError(t, err)

	n := NewNode(Panel, "dock", "", "")
	Layout(sheet, []*Node{n}, 1000, 800)
	assert.Equal(t, Rect{X: 680, Y: 0, Width: 320, Height: 800}, n.Bounds)
}

func TestStack(t *testing.T) {
	panel := NewNode(Panel, "", "", "")
	panel.Bounds = Rect{X: 100, Y: 50, Width: 200, Height: 300}
	a := NewNode(Label, "", "", "a")
	b := NewNode(Label, "", "", "b")
	items := []Styled{
		{Node: panel, Style: ComputedStyle{Padding: 8}},
		{Node: a},
		{Node: b},
	}
	Stack(items, 20)
	assert.Equal(t, Rect{X: 108, Y: 58, Width: 184, Height: 20}, a.Bounds)
	assert.Equal(t, Rect{X: 108, Y: 78, Width: 184, Height: 20}, b.Bounds)
}

func TestInspectorHidden(t *testing.T) {
	in := NewInspector()
	dst := in.AppendNodes(nil, false, true, Snapshot{})
	assert.Empty(t, dst)
}

func TestInspectorLines(t *testing.T) {
	in := NewInspector()
	snap := Snapshot{
		Lights:  []string{"HemisphericLight", "PointLight"},
		Camera:  &CameraInfo{Name: "Camera", Radius: 10},
		ShowFPS: true,
		FPS:     60,
		Log:     []string{"[10:00:00] INFO material loaded"},
	}
	nodes := in.AppendNodes(nil, true, true, snap)
	require.GreaterOrEqual(t, len(nodes), 2)
	assert.Equal(t, "inspector-embed", nodes[0].Class)

	var texts []string
	for _, n := range nodes[2:] {
		texts = append(texts, n.Text)
	}
	assert.Equal(t, []string{
		"FPS: 60",
		"Light: HemisphericLight",
		"Light: PointLight",
		"Camera: Camera",
		"  alpha 0.00  beta 0.00  radius 10.00",
		"  position 0.00, 0.00, 0.00",
		"Mesh: (waiting for material)",
		"[10:00:00] INFO material loaded",
	}, texts)

	snap.Meshes = []MeshInfo{{Name: "Mesh", Material: "NodeMaterial"}}
	snap.Log = nil
	snap.ShowFPS = false
	nodes = in.AppendNodes(nil, true, false, snap)
	assert.Equal(t, "inspector", nodes[0].Class)
	last := nodes[len(nodes)-2:]
	assert.Equal(t, "Mesh: Mesh", last[0].Text)
	assert.Equal(t, "  material NodeMaterial", last[1].Text)
	assert.Equal(t, "inspector-detail", last[1].Class)
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"12", Length{Value: 12}, true},
		{"12px", Length{Value: 12}, true},
		{" 50% ", Length{Value: 50, Percent: true}, true},
		{"2.6", Length{Value: 3}, true},
		{"10em", Length{}, false},
		{"px", Length{}, false},
		{"", Length{}, false},
	}
	for _, c := range cases {
		got, ok := ParseLength(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
	assert.Equal(t, int32(400), Length{Value: 50, Percent: true}.Of(800))
	assert.Equal(t, int32(7), Length{Value: 7}.Of(800))
}

func TestDefaultCSS(t *testing.T) {
	sheet, err := ParseCSS(DefaultCSS)
	require.NoError(t, err)
	assert.Len(t, sheet.Rules, 8)
	assert.NotPanics(t, func() { MustParseCSS(DefaultCSS) })

	panel := NewNode(Panel, "inspector-embed", "", "")
	Layout(sheet, []*Node{panel}, 1280, 720)
	assert.Equal(t, Rect{X: 860, Y: 0, Width: 420, Height: 720}, panel.Bounds)
}

func TestTruncateKeepsRunes(t *testing.T) {
	short := "[10:00:00] INFO ok"
	assert.Equal(t, short, truncate(short, maxLogLine))

	long := strings.Repeat("é", 80)
	got := truncate(long, maxLogLine)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxLogLine)
	assert.True(t, strings.HasSuffix(got, "..."))

	in := NewInspector()
	nodes := in.AppendNodes(nil, true, false, Snapshot{Log: []string{long}})
	last := nodes[len(nodes)-1]
	assert.Equal(t, "inspector-log", last.Class)
	assert.True(t, utf8.ValidString(last.Text))
}

func TestInspectorKinds(t *testing.T) {
	nodes := NewInspector().AppendNodes(nil, true, false, Snapshot{Lights: []string{"PointLight"}})
	require.GreaterOrEqual(t, len(nodes), 3)
	assert.Equal(t, Panel, nodes[0].Kind)
	for _, n := range nodes[1:] {
		assert.Equal(t, Label, n.Kind, n.Text)
	}
}
