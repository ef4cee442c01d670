package ui

import (
	"fmt"
	"unicode/utf8"
)

// maxLogLine is the longest log line shown, in bytes, before it is cut with "...".
const maxLogLine = 96

// Inspector is the debug panel that lists the scene's nodes, frame statistics and recent log lines.
// It owns its nodes and reuses them across frames; AppendNodes refreshes their text.
type Inspector struct {
	panel  *Node
	title  *Node
	labels []*Node
	used   int
}

// NewInspector creates an Inspector with nodes styled by the overlay CSS (.inspector, .inspector-title, .inspector-line).
func NewInspector() *Inspector {
	return &Inspector{
		panel: NewNode(Panel, "inspector", "", ""),
		title: NewNode(Label, "inspector-title", "", "Inspector"),
	}
}

// CameraInfo describes an orbit camera.
type CameraInfo struct {
	Name     string
	Alpha    float32
	Beta     float32
	Radius   float32
	Position [3]float32
}

// MeshInfo describes a mesh and its material.
type MeshInfo struct {
	Name     string
	Material string
}

// Snapshot holds the data shown in the inspector. The scene fills it every frame;
// ui does not depend on scene.
type Snapshot struct {
	Lights  []string
	Camera  *CameraInfo
	Meshes  []MeshInfo
	FPS     int32
	HeapMiB float64
	ShowFPS bool
	ShowMem bool
	Log     []string
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels from snap.
// Embedded panels use the .inspector-embed class, floating ones .inspector.
// When visible is false, dst is returned unchanged.
func (in *Inspector) AppendNodes(dst []*Node, visible, embed bool, snap Snapshot) []*Node {
	if !visible {
		return dst
	}
	in.panel.Class = "inspector"
	in.title.Class = "inspector-title"
	if embed {
		in.panel.Class = "inspector-embed"
		in.title.Class = "inspector-embed-title"
	}
	in.used = 0

	if snap.ShowFPS {
		in.line("stat", fmt.Sprintf("FPS: %d", snap.FPS))
	}
	if snap.ShowMem {
		in.line("stat", fmt.Sprintf("Mem: %.2f MiB", snap.HeapMiB))
	}
	for _, l := range snap.Lights {
		in.line("node", "Light: "+l)
	}
	if c := snap.Camera; c != nil {
		in.line("node", "Camera: "+c.Name)
		in.line("detail", fmt.Sprintf("  alpha %.2f  beta %.2f  radius %.2f", c.Alpha, c.Beta, c.Radius))
		in.line("detail", fmt.Sprintf("  position %.2f, %.2f, %.2f", c.Position[0], c.Position[1], c.Position[2]))
	}
	if len(snap.Meshes) == 0 {
		in.line("detail", "Mesh: (waiting for material)")
	}
	for _, m := range snap.Meshes {
		in.line("node", "Mesh: "+m.Name)
		in.line("detail", "  material "+m.Material)
	}
	for _, l := range snap.Log {
		in.line("log", truncate(l, maxLogLine))
	}

	dst = append(dst, in.panel, in.title)
	return append(dst, in.labels[:in.used]...)
}

// line fills the next pooled label with text. kind selects the .inspector-<kind> class.
func (in *Inspector) line(kind, text string) {
	if in.used == len(in.labels) {
		in.labels = append(in.labels, NewNode(Label, "", "", ""))
	}
	n := in.labels[in.used]
	n.Class = "inspector-" + kind
	n.Text = text
	in.used++
}

// truncate shortens s to at most n bytes, ending in "...", without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
