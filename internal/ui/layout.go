package ui

// Styled pairs a node with its resolved style.
type Styled struct {
	Node  *Node
	Style ComputedStyle
}

// Match returns the merged properties for n (class and id matched; last wins).
func (s *Stylesheet) Match(n *Node) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, rule := range s.Rules {
		sel := rule.Selector
		matches := false
		switch sel[0] {
		case '.':
			matches = n.Class != "" && n.Class == sel[1:]
		case '#':
			matches = n.ID != "" && n.ID == sel[1:]
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Layout resolves each node's style against sheet and sets its Bounds for a
// screen of screenW x screenH pixels. Percent positions place the node within
// the space left over by its own size, so left: 100% docks it to the right edge.
func Layout(sheet *Stylesheet, nodes []*Node, screenW, screenH int32) []Styled {
	out := make([]Styled, len(nodes))
	for i, n := range nodes {
		style := ResolveProps(sheet.Match(n))
		w, h := style.Width.Of(screenW), style.Height.Of(screenH)
		x, y := style.Left.Of(screenW-w), style.Top.Of(screenH-h)
		n.Bounds = Rect{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
		out[i] = Styled{Node: n, Style: style}
	}
	return out
}

// Stack places items one below another inside the first item's bounds (the
// panel), starting at its padding, each lineHeight pixels tall. Items wider
// than the panel are clipped to it.
func Stack(items []Styled, lineHeight int32) {
	if len(items) < 2 {
		return
	}
	panel := items[0]
	pad := float32(panel.Style.Padding)
	y := panel.Node.Bounds.Y + pad
	for _, it := range items[1:] {
		it.Node.Bounds = Rect{
			X:      panel.Node.Bounds.X + pad,
			Y:      y,
			Width:  max(panel.Node.Bounds.Width-2*pad, 0),
			Height: float32(lineHeight),
		}
		y += float32(lineHeight)
	}
}
