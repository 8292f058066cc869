// Package dom provides the live, mutable presentation tree that patches
// are applied to.
//
// A Node is either an element or a text node. Elements carry attributes
// (plain and namespaced), direct properties, inline styles, ordered
// children, and per-event listeners. The tree is exclusively owned by the
// reconciler: application code describes UI with virtual nodes and never
// touches dom.Node directly.
//
// Events fired with Node.Fire bubble from the target to the root the way
// a browser dispatches them, honoring StopPropagation. Node.String
// serializes a subtree to HTML for first-paint output and for
// observational equality in tests.
package dom
