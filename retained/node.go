// Package retained provides the circular scroll view and the node and
// frame-scheduling primitives it is built on.
//
// Geometry uses a y-up space anchored at the bottom-left corner of the
// parent: a node's position is its bottom-left corner, so its top edge sits
// at Position().Y + Size().Height.
//
// Nothing in this package is safe for concurrent use except Scheduler and the
// logger. Drive a ScrollView from a single loop.
package retained

import (
	"math"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// NodeID uniquely identifies a node for the lifetime of the process.
type NodeID uint64

var nextNodeID atomic.Uint64

func newNodeID() NodeID {
	return NodeID(nextNodeID.Add(1))
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Sz is a convenience constructor for Size.
func Sz(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// LayoutType selects how a node arranges its children.
type LayoutType uint8

const (
	// LayoutAbsolute leaves children where they were placed.
	LayoutAbsolute LayoutType = iota

	// LayoutVertical stacks children from the top edge downwards.
	// Child x positions are preserved.
	LayoutVertical

	// LayoutHorizontal stacks children from the left edge rightwards.
	// Child y positions are preserved.
	LayoutHorizontal
)

// String returns the layout name.
func (l LayoutType) String() string {
	switch l {
	case LayoutAbsolute:
		return "absolute"
	case LayoutVertical:
		return "vertical"
	case LayoutHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Node is a rectangular panel with position, size and children.
// The scroll view's inner container is a Node; so is every child placed in it.
type Node struct {
	id       NodeID
	tag      int
	name     string
	parent   *Node
	children []*Node

	pos  gg.Point // bottom-left corner in parent space
	size Size

	layout LayoutType
	gap    float64 // spacing between children for stacked layouts

	minSize Size   // floor applied by SetSize
	resized func() // called after SetSize changes the size
}

// NewNode creates a detached node at the origin with zero size.
func NewNode() *Node {
	return &Node{id: newNodeID()}
}

// ID returns the node's unique identifier.
func (n *Node) ID() NodeID {
	return n.id
}

// Tag returns the user-assigned integer tag.
func (n *Node) Tag() int {
	return n.tag
}

// SetTag assigns an integer tag used by ChildByTag.
func (n *Node) SetTag(tag int) *Node {
	n.tag = tag
	return n
}

// Name returns the user-assigned name.
func (n *Node) Name() string {
	return n.name
}

// SetName assigns a name used by ChildByName.
func (n *Node) SetName(name string) *Node {
	n.name = name
	return n
}

// ============================================================================
// Geometry
// ============================================================================

// Position returns the bottom-left corner in parent space.
func (n *Node) Position() gg.Point {
	return n.pos
}

// SetPosition moves the node's bottom-left corner to p.
func (n *Node) SetPosition(p gg.Point) *Node {
	n.pos = p
	return n
}

// Translate offsets the node's position.
func (n *Node) Translate(dx, dy float64) *Node {
	n.pos = gg.Pt(n.pos.X+dx, n.pos.Y+dy)
	return n
}

// Size returns the node's width and height.
func (n *Node) Size() Size {
	return n.size
}

// SetSize sets width and height and re-runs the layout. A node owned by a
// ScrollView as its inner container never shrinks below the viewport.
func (n *Node) SetSize(size Size) *Node {
	size.Width = math.Max(size.Width, n.minSize.Width)
	size.Height = math.Max(size.Height, n.minSize.Height)
	if n.size != size {
		n.size = size
		n.DoLayout()
		if n.resized != nil {
			n.resized()
		}
	}
	return n
}

// Left returns the x coordinate of the left edge in parent space.
func (n *Node) Left() float64 { return n.pos.X }

// Right returns the x coordinate of the right edge in parent space.
func (n *Node) Right() float64 { return n.pos.X + n.size.Width }

// Bottom returns the y coordinate of the bottom edge in parent space.
func (n *Node) Bottom() float64 { return n.pos.Y }

// Top returns the y coordinate of the top edge in parent space.
func (n *Node) Top() float64 { return n.pos.Y + n.size.Height }

// Contains reports whether p, in parent space, lies inside the node.
func (n *Node) Contains(p gg.Point) bool {
	return p.X >= n.Left() && p.X < n.Right() && p.Y >= n.Bottom() && p.Y < n.Top()
}

// ============================================================================
// Tree Structure
// ============================================================================

// Parent returns the node's parent, or nil if detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the children slice.
func (n *Node) Children() []*Node {
	result := make([]*Node, len(n.children))
	copy(result, n.children)
	return result
}

// ChildrenCount returns the number of direct children.
func (n *Node) ChildrenCount() int {
	return len(n.children)
}

// AddChild appends a child, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) *Node {
	if child == nil || child == n {
		return n
	}
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
	n.DoLayout()
	return n
}

// RemoveChild removes a child by reference. Returns false if it was not a child.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			n.DoLayout()
			return true
		}
	}
	return false
}

// RemoveAllChildren detaches every child.
func (n *Node) RemoveAllChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// RemoveFromParent detaches this node from its parent.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// ChildByTag returns the first direct child with the given tag, or nil.
func (n *Node) ChildByTag(tag int) *Node {
	for _, c := range n.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// ChildByName returns the first direct child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ============================================================================
// Layout
// ============================================================================

// LayoutType returns the active child layout.
func (n *Node) LayoutType() LayoutType {
	return n.layout
}

// SetLayoutType changes how children are arranged and re-runs the layout.
func (n *Node) SetLayoutType(layout LayoutType) *Node {
	n.layout = layout
	n.DoLayout()
	return n
}

// SetGap sets the spacing between stacked children.
func (n *Node) SetGap(gap float64) *Node {
	n.gap = gap
	n.DoLayout()
	return n
}

// DoLayout positions children according to the layout type.
func (n *Node) DoLayout() {
	switch n.layout {
	case LayoutVertical:
		cursor := n.size.Height
		for _, c := range n.children {
			cursor -= c.size.Height
			c.pos.Y = cursor
			cursor -= n.gap
		}
	case LayoutHorizontal:
		cursor := 0.0
		for _, c := range n.children {
			c.pos.X = cursor
			cursor += c.size.Width + n.gap
		}
	}
}

// ContentSize returns the smallest size, anchored at the origin, that holds
// every child.
func (n *Node) ContentSize() Size {
	var s Size
	for _, c := range n.children {
		if r := c.Right(); r > s.Width {
			s.Width = r
		}
		if t := c.Top(); t > s.Height {
			s.Height = t
		}
	}
	return s
}
