package dom

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <button>, etc.
	KindText                    // Character data
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// NSAttr is a namespaced attribute value.
type NSAttr struct {
	Namespace string
	Value     string
}

// Node is one node of the live presentation tree. It is the only mutable
// tree in the system; the reconciler owns it exclusively and nothing else
// may write to it between commits.
type Node struct {
	Kind      NodeKind
	Tag       string // Element tag name (e.g., "div")
	Namespace string // Element namespace, "" for the default

	Text string // For KindText

	Attrs   map[string]string
	AttrsNS map[string]NSAttr
	Props   map[string]any
	Styles  map[string]string

	// EventRef is an opaque back-reference slot. The reconciler stores the
	// event-routing record for the subtree rooted here.
	EventRef any

	children  []*Node
	parent    *Node
	listeners map[string]*Listener
}

// Listener is a native event listener attached to a node. Fn stays stable
// for the lifetime of the (node, event) pair; callers that need to change
// behavior swap state the function closes over instead of re-attaching.
type Listener struct {
	Name string
	Fn   func(*Event)

	// Info is an opaque slot for whatever state Fn closes over, so the
	// owner can find and mutate it later without re-attaching.
	Info any
}

// CreateElement creates a live element node.
func CreateElement(tag string) *Node {
	return &Node{Kind: KindElement, Tag: tag}
}

// CreateElementNS creates a live element node in the given namespace.
func CreateElementNS(namespace, tag string) *Node {
	return &Node{Kind: KindElement, Tag: tag, Namespace: namespace}
}

// CreateText creates a live text node.
func CreateText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Parent returns the node's parent, or nil for a detached root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's ordered children. The returned slice is the
// node's own storage; callers must not mutate it.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// AppendChild appends child, detaching it from any previous parent.
func (n *Node) AppendChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild removes child from n. Returns false if child is not a
// direct child of n.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// RemoveLast removes the trailing count children.
func (n *Node) RemoveLast(count int) {
	if count <= 0 {
		return
	}
	if count > len(n.children) {
		count = len(n.children)
	}
	cut := len(n.children) - count
	for _, c := range n.children[cut:] {
		c.parent = nil
	}
	n.children = n.children[:cut]
}

// ReplaceChild swaps oldChild for newChild in place, preserving position.
// Returns false if oldChild is not a direct child of n.
func (n *Node) ReplaceChild(newChild, oldChild *Node) bool {
	for i, c := range n.children {
		if c == oldChild {
			if newChild.parent != nil {
				newChild.parent.RemoveChild(newChild)
			}
			n.children[i] = newChild
			newChild.parent = n
			oldChild.parent = nil
			return true
		}
	}
	return false
}

// SetAttr sets a host attribute.
func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

// RemoveAttr removes a host attribute.
func (n *Node) RemoveAttr(key string) {
	delete(n.Attrs, key)
}

// SetAttrNS sets a namespaced host attribute.
func (n *Node) SetAttrNS(key, namespace, value string) {
	if n.AttrsNS == nil {
		n.AttrsNS = make(map[string]NSAttr)
	}
	n.AttrsNS[key] = NSAttr{Namespace: namespace, Value: value}
}

// RemoveAttrNS removes a namespaced host attribute.
func (n *Node) RemoveAttrNS(key string) {
	delete(n.AttrsNS, key)
}

// SetProp sets a direct property on the node.
func (n *Node) SetProp(key string, value any) {
	if n.Props == nil {
		n.Props = make(map[string]any)
	}
	n.Props[key] = value
}

// Prop returns a direct property, or nil when unset.
func (n *Node) Prop(key string) any {
	return n.Props[key]
}

// SetStyle sets an inline style property. An empty value clears it, which
// mirrors how hosts treat style removal.
func (n *Node) SetStyle(key, value string) {
	if value == "" {
		delete(n.Styles, key)
		return
	}
	if n.Styles == nil {
		n.Styles = make(map[string]string)
	}
	n.Styles[key] = value
}

// SetText replaces a text node's character data.
func (n *Node) SetText(text string) {
	n.Text = text
}

// AddListener attaches a listener for the named event, replacing any
// listener previously attached for the same name.
func (n *Node) AddListener(name string, fn func(*Event)) *Listener {
	if n.listeners == nil {
		n.listeners = make(map[string]*Listener)
	}
	l := &Listener{Name: name, Fn: fn}
	n.listeners[name] = l
	return l
}

// RemoveListener detaches the listener for the named event.
func (n *Node) RemoveListener(name string) {
	delete(n.listeners, name)
}

// Listener returns the attached listener for the named event, or nil.
func (n *Node) Listener(name string) *Listener {
	return n.listeners[name]
}

// ListenerCount returns the number of attached listeners.
func (n *Node) ListenerCount() int {
	return len(n.listeners)
}

// Path returns the child-index path from the tree root down to n. The
// root itself has an empty path. Paths are how nodes are addressed on
// the wire, where concrete pointers cannot travel.
func (n *Node) Path() []int {
	var rev []int
	for cur := n; cur.parent != nil; cur = cur.parent {
		idx := -1
		for i, c := range cur.parent.children {
			if c == cur {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		rev = append(rev, idx)
	}
	path := make([]int, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = idx
	}
	return path
}

// Resolve walks a child-index path from n. Returns nil if the path runs
// off the tree.
func (n *Node) Resolve(path []int) *Node {
	cur := n
	for _, idx := range path {
		if cur == nil || idx < 0 || idx >= len(cur.children) {
			return nil
		}
		cur = cur.children[idx]
	}
	return cur
}
