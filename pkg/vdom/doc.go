// Package vdom implements the virtual-tree reconciliation engine: an
// immutable description of a UI tree, a differ that computes a minimal
// edit list between two descriptions, and a patcher that applies those
// edits to the live tree in pkg/dom.
//
// # Core Types
//
// VNode is the closed node union: Text, Element (via the factory
// functions), Map for message-routing boundaries, Lazy for memoized
// subtrees, and Custom for delegated node kinds. Facts — attributes,
// properties, styles, and event handlers — are declared flat and
// organized into a categorized FactSet at construction.
//
// # Pipeline
//
// Diff compares two trees and returns patches addressed by preorder
// index over the old tree; no live node is touched while diffing.
// ApplyPatches then resolves each index against the live tree (skipping
// unchanged subtrees via descendant counts) and executes the edits.
// Render mounts a tree from scratch.
//
// # Events
//
// Event handlers decode native events into application messages. A
// subtree wrapped in Map contributes its mapper to the EventNode chain
// walked on every dispatch; decode failures drop the event silently.
package vdom
