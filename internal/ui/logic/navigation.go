package logic

// Navigator handles cursor movement and the viewport over a flat list of
// rows. The row after the last item is the sentinel.
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 20}
}

// SetTotal updates the number of items and clamps the cursor.
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.total = total
	n.clamp()
}

// SetViewportHeight sets the number of rows available for items
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.clamp()
}

func (n *Navigator) SelectedIndex() int  { return n.selectedIndex }
func (n *Navigator) ViewportOffset() int { return n.viewportOffset }
func (n *Navigator) ViewportHeight() int { return n.viewportHeight }

// Move shifts the cursor by delta rows
func (n *Navigator) Move(delta int) {
	n.selectedIndex += delta
	n.clamp()
}

// PageUp moves the selection up by one page
func (n *Navigator) PageUp() {
	n.Move(-n.pageSize())
}

// PageDown moves the selection down by one page
func (n *Navigator) PageDown() {
	n.Move(n.pageSize())
}

// Home jumps to the first item
func (n *Navigator) Home() {
	n.selectedIndex = 0
	n.clamp()
}

// End jumps to the last item
func (n *Navigator) End() {
	n.selectedIndex = n.total - 1
	n.clamp()
}

// Reset moves back to the top of the list
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
	n.clamp()
}

// SentinelVisible reports whether the row just past the last item falls
// inside the viewport.
func (n *Navigator) SentinelVisible() bool {
	return n.total >= n.viewportOffset && n.total < n.viewportOffset+n.viewportHeight
}

func (n *Navigator) pageSize() int {
	size := n.viewportHeight - 2 // Leave some overlap
	if size < 1 {
		size = 1
	}
	return size
}

func (n *Navigator) clamp() {
	if n.selectedIndex >= n.total {
		n.selectedIndex = n.total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	n.ensureSelectedVisible()
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	bottom := n.selectedIndex
	if n.selectedIndex == n.total-1 && n.viewportHeight > 1 {
		// Keep the sentinel row on screen at the end of the list
		bottom = n.total
	}
	if bottom >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = bottom - n.viewportHeight + 1
	}
	// The sentinel row may be scrolled into view, nothing further
	maxOffset := n.total + 1 - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
