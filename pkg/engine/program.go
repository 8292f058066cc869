package engine

import (
	"sync"

	"github.com/alder-ui/alder/pkg/dom"
	"github.com/alder-ui/alder/pkg/vdom"
)

// Program describes an application as a pure state machine: an initial
// model, a reducer folding messages into new models, and a view
// projecting the model to a virtual tree.
type Program[Model any] struct {
	Init   func() Model
	Update func(Model, vdom.Msg) Model
	View   func(Model) *vdom.VNode
}

// Runner owns a running Program: it holds the current model, feeds
// dispatched messages through Update, and stages the new view on the
// mounted handle.
type Runner[Model any] struct {
	mu      sync.Mutex
	model   Model
	program Program[Model]
	handle  *Handle
}

// Run mounts p under host and starts routing messages. Options are
// forwarded to Mount; a sink option is installed last so handler
// messages always reach the program's Update.
func Run[Model any](host *dom.Node, p Program[Model], opts ...Option) *Runner[Model] {
	r := &Runner[Model]{model: p.Init(), program: p}
	opts = append(opts, WithSink(r.Send))
	r.handle = Mount(host, p.View(r.model), opts...)
	return r
}

// Send folds msg into the model and stages the resulting view for the
// next frame. Event handlers deliver here through the handle's sink;
// callers may also use it directly for out-of-band messages.
func (r *Runner[Model]) Send(msg vdom.Msg) {
	r.mu.Lock()
	r.model = r.program.Update(r.model, msg)
	tree := r.program.View(r.model)
	r.mu.Unlock()
	r.handle.Update(tree)
}

// Model returns the current model.
func (r *Runner[Model]) Model() Model {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.model
}

// Handle returns the underlying mounted handle.
func (r *Runner[Model]) Handle() *Handle {
	return r.handle
}
