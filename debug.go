package bramble

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and tree metrics.
// Only populated when Screen.debug is true.
type debugStats struct {
	drawTime    time.Duration
	widgetCount int
	maxDepth    int
}

// debugLog prints frame stats to stderr.
func (s *Screen) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[bramble] draw: %v | widgets: %d | depth: %d | focus path: %d | drag: %v\n",
		stats.drawTime, stats.widgetCount, stats.maxDepth, len(s.focusPath), s.dragActive)
}

func debugLogEvent(e InteractionEvent) {
	_, _ = fmt.Fprintf(os.Stderr, "[bramble] event %s widget=%q at (%d,%d) handled=%v\n",
		e.Type, e.WidgetID, e.X, e.Y, e.Handled)
}

// debugCheckDisposed panics with a descriptive message when a disposed
// widget is used in a tree operation. Only called in debug mode; in release
// mode the operation returns ErrDisposed instead.
func debugCheckDisposed(n *WidgetNode, op string) {
	if n.disposed {
		panic(fmt.Sprintf("bramble debug: %s on disposed widget %q", op, n.id))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *WidgetNode) {
	depth := 0
	for p := n; p != nil; p = p.parentNode() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[bramble] warning: tree depth %d exceeds %d (widget %q)\n",
			depth, debugMaxTreeDepth, n.id)
	}
}

// debugCheckChildCount warns on stderr if a widget has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *WidgetNode) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[bramble] warning: widget %q has %d children (threshold %d)\n",
			n.id, len(n.children), debugMaxChildCount)
	}
}

// countWidgets returns the number of widgets in w's subtree and its depth.
func countWidgets(w Widget) (count, depth int) {
	count = 1
	for _, child := range w.base().children {
		c, d := countWidgets(child)
		count += c
		depth = max(depth, d)
	}
	return count, depth + 1
}
