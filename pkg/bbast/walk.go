package bbast

import (
	"reflect"
	"strings"
)

// WalkFunc is called for each node during traversal.
// Return false to skip the node's children.
type WalkFunc func(n *Node) bool

// Walk traverses the tree in depth-first pre-order.
func Walk(root *Node, fn WalkFunc) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.Children {
		Walk(child, fn)
	}
}

// WalkWithDepth traverses the tree calling enter before a node's children
// and leave after them. depth is 0 for the root.
func WalkWithDepth(root *Node, enter, leave func(n *Node, depth int)) {
	walkDepth(root, 0, enter, leave)
}

func walkDepth(n *Node, depth int, enter, leave func(*Node, int)) {
	if n == nil {
		return
	}
	if enter != nil {
		enter(n, depth)
	}
	for _, child := range n.Children {
		walkDepth(child, depth+1, enter, leave)
	}
	if leave != nil {
		leave(n, depth)
	}
}

// FindAll returns every node for which pred returns true, in document order.
func FindAll(root *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindByKind returns every node of the given kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// Count returns the number of nodes of each kind in the tree.
func Count(root *Node) map[NodeKind]int {
	counts := make(map[NodeKind]int)
	Walk(root, func(n *Node) bool {
		counts[n.Kind]++
		return true
	})
	return counts
}

// VisibleText concatenates the text of every Run, with LineBreaks as "\n".
func VisibleText(root *Node) string {
	var b strings.Builder
	Walk(root, func(n *Node) bool {
		switch n.Kind {
		case NodeRun:
			b.WriteString(n.Text)
		case NodeLineBreak:
			b.WriteByte('\n')
		}
		return true
	})
	return b.String()
}

// Equal reports whether two trees are structurally identical, comparing
// kinds, text, style values, and link attributes.
func Equal(a, b *Node) bool {
	return reflect.DeepEqual(a, b)
}
