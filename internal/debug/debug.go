package debug

import (
	"image/color"
	"os"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"sphere-viewer/internal/engine"
	"sphere-viewer/internal/ui"
)

const (
	fontSize   = 18
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem every N frames to reduce allocations.
	updateInterval = 30
)

// Options configures what the overlay shows besides the scene inspector.
type Options struct {
	ShowFPS  bool
	ShowMem  bool
	LogLines int
	// History returns the most recent log lines; nil disables the log section.
	History func(n int) []string
	// CSSPath, when set, is loaded over the built-in stylesheet.
	CSSPath string
	Log     logrus.FieldLogger
}

// Overlay is the scene debug layer: an inspector panel with frame statistics,
// scene nodes and recent log output. All overlays are hidden until Show.
type Overlay struct {
	opts      Options
	visible   bool
	embed     bool
	sheet     *ui.Stylesheet
	inspector *ui.Inspector
	nodes     []*ui.Node

	frameCount uint32
	fps        int32
	heapMiB    float64
	memStats   runtime.MemStats
}

var _ engine.Overlay = (*Overlay)(nil)

// New returns a hidden overlay styled by the built-in stylesheet, or by
// opts.CSSPath when that file loads.
func New(opts Options) *Overlay {
	o := &Overlay{opts: opts, sheet: ui.MustParseCSS(ui.DefaultCSS), inspector: ui.NewInspector()}
	if opts.CSSPath != "" {
		if err := o.LoadCSS(opts.CSSPath); err != nil && opts.Log != nil {
			opts.Log.WithError(err).WithField("css", opts.CSSPath).Warn("overlay stylesheet not loaded, using built-in")
		}
	}
	return o
}

// LoadCSS replaces the built-in stylesheet with the file at path.
func (o *Overlay) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ui.ParseCSS(string(data))
	if err != nil {
		return err
	}
	o.sheet = sheet
	return nil
}

// Show makes the overlay visible.
func (o *Overlay) Show(opts engine.OverlayOptions) {
	o.visible = true
	o.embed = opts.EmbedMode
}

// Hide hides the overlay.
func (o *Overlay) Hide() {
	o.visible = false
}

// IsVisible reports whether the overlay is shown.
func (o *Overlay) IsVisible() bool {
	return o.visible
}

// Draw renders the overlay for snap. Call after the 3D pass, outside BeginMode3D.
// Statistics are only recomputed every updateInterval frames.
func (o *Overlay) Draw(snap ui.Snapshot) {
	if !o.visible {
		return
	}
	o.frameCount++
	if o.frameCount%updateInterval == 1 {
		o.fps = rl.GetFPS()
		runtime.ReadMemStats(&o.memStats)
		o.heapMiB = float64(o.memStats.Alloc) / (1024 * 1024)
	}
	snap.FPS, snap.HeapMiB = o.fps, o.heapMiB
	snap.ShowFPS, snap.ShowMem = o.opts.ShowFPS, o.opts.ShowMem
	if o.opts.History != nil && o.opts.LogLines > 0 {
		snap.Log = o.opts.History(o.opts.LogLines)
	}

	o.nodes = o.inspector.AppendNodes(o.nodes[:0], true, o.embed, snap)
	styled := ui.Layout(o.sheet, o.nodes, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	ui.Stack(styled, lineHeight)

	for _, s := range styled {
		drawNode(s)
	}
}

func drawNode(s ui.Styled) {
	b := s.Node.Bounds
	x, y, w, h := int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height)
	switch s.Node.Kind {
	case ui.Panel:
		if w <= 0 || h <= 0 {
			return
		}
		if s.Style.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, rlColor(s.Style.Background))
		}
		if s.Style.HasBorder {
			rl.DrawRectangleLines(x, y, w, h, rlColor(s.Style.Border))
		}
	case ui.Label:
		if s.Node.Text != "" {
			rl.DrawText(s.Node.Text, x, y, fontSize, rlColor(s.Style.Color))
		}
	}
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
