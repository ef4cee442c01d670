package ui

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Kind tells panels (filled boxes) from labels (one line of text).
type Kind uint8

const (
	Panel Kind = iota
	Label
)

// Node is one element of the overlay. Class and ID are matched against
// stylesheet selectors; Bounds is set by Layout or Stack.
type Node struct {
	Kind   Kind
	Class  string
	ID     string
	Text   string
	Bounds Rect
}

// NewNode creates a node of the given kind with optional class, id and text.
func NewNode(kind Kind, class, id, text string) *Node {
	return &Node{Kind: kind, Class: class, ID: id, Text: text}
}
