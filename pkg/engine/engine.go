package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/alder-ui/alder/pkg/dom"
	"github.com/alder-ui/alder/pkg/vdom"
)

// Handle is a mounted virtual tree. Update stages trees and Dispatch
// fires events; everything else is internal.
//
// mu owns the live tree: commits mutate it and dispatched events read
// it, never concurrently. stageMu only covers the staged next tree, so
// handlers running under mu can stage an update without reentering it.
type Handle struct {
	mu      sync.Mutex
	host    *dom.Node
	root    *dom.Node
	current *vdom.VNode

	stageMu sync.Mutex
	next    *vdom.VNode

	events *vdom.EventNode
	anim   *animator

	log     *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	onPatches func([]vdom.Patch)
}

// Option configures a mount.
type Option func(*Handle)

// WithSink sets the message sink that receives fully mapped messages
// from event handlers.
func WithSink(sink func(vdom.Msg)) Option {
	return func(h *Handle) { h.events = vdom.NewRootEventNode(sink) }
}

// WithFramer sets the frame source driving the commit loop.
func WithFramer(f Framer) Option {
	return func(h *Handle) { h.anim = newAnimator(f, h.commit) }
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handle) { h.log = log }
}

// WithMetrics records commit cycle metrics to m.
func WithMetrics(m *Metrics) Option {
	return func(h *Handle) { h.metrics = m }
}

// WithTracer emits one span per commit cycle.
func WithTracer(t trace.Tracer) Option {
	return func(h *Handle) { h.tracer = t }
}

// WithPatchObserver calls fn after every commit with the applied,
// located patches. The server uses this to mirror commits to clients.
// fn runs under the tree lock: it must not retain the slice past the
// call and must not call back into Root, Tree, or Dispatch.
func WithPatchObserver(fn func([]vdom.Patch)) Option {
	return func(h *Handle) { h.onPatches = fn }
}

// Mount renders tree under host and returns the handle for subsequent
// updates.
func Mount(host *dom.Node, tree *vdom.VNode, opts ...Option) *Handle {
	h := &Handle{
		host:   host,
		log:    slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("alder"),
	}
	h.events = vdom.NewRootEventNode(nil)

	for _, opt := range opts {
		opt(h)
	}
	if h.anim == nil {
		h.anim = newAnimator(&TickFramer{}, h.commit)
	}

	h.root = vdom.Render(tree, h.events)
	host.AppendChild(h.root)
	h.current = tree

	return h
}

// Host returns the node the tree was mounted under. Wire paths and
// event target paths are relative to it.
func (h *Handle) Host() *dom.Node {
	return h.host
}

// Root returns the live root node.
func (h *Handle) Root() *dom.Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.root
}

// HTML serializes the live root under the tree lock, so the markup is
// never read mid-patch. Use it instead of Root().String() whenever
// commits may still be ticking.
func (h *Handle) HTML() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.root.String()
}

// Tree returns the most recently committed virtual tree.
func (h *Handle) Tree() *vdom.VNode {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Update stages next as the tree to commit and requests a frame. Bursts
// of calls between frames coalesce: only the latest staged tree is
// diffed, always against the most recently committed one.
func (h *Handle) Update(next *vdom.VNode) {
	h.stageMu.Lock()
	h.next = next
	h.stageMu.Unlock()
	if h.anim.Request() {
		h.metrics.observeCoalesced()
	}
}

// Dispatch resolves path relative to the host and fires ev at the node
// there, serialized against commits so handlers never observe the live
// tree mid-patch. It reports whether a node existed at path.
func (h *Handle) Dispatch(path []int, ev *dom.Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	node := h.host.Resolve(path)
	if node == nil {
		return false
	}
	node.Fire(ev)
	return true
}

// commit runs one diff+patch cycle. It is invoked by the animator at
// most once per frame and runs to completion synchronously. The tree
// lock is held from diff through the patch observer, so observers see
// the live tree exactly as this commit left it.
func (h *Handle) commit() {
	h.stageMu.Lock()
	next := h.next
	h.next = nil
	h.stageMu.Unlock()
	if next == nil {
		return
	}

	_, span := h.tracer.Start(context.Background(), "alder.commit")
	defer span.End()

	start := time.Now()

	h.mu.Lock()
	patches := vdom.Diff(h.current, next)
	h.root = vdom.ApplyPatches(h.root, h.current, patches, h.events)
	h.current = next
	elapsed := time.Since(start)
	if h.onPatches != nil {
		h.onPatches(patches)
	}
	h.mu.Unlock()

	span.SetAttributes(
		attribute.Int("alder.patch_count", len(patches)),
		attribute.Int64("alder.duration_us", elapsed.Microseconds()),
	)
	h.metrics.observeCommit(patches, elapsed)
	h.log.Debug("commit",
		slog.Int("patches", len(patches)),
		slog.Duration("elapsed", elapsed),
	)
}
