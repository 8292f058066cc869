package main

import (
	"github.com/alder-ui/alder/pkg/dom"
	"github.com/alder-ui/alder/pkg/engine"
	"github.com/alder-ui/alder/pkg/vdom"
)

// Messages for the counter.
type (
	increment struct{}
	decrement struct{}
	reset     struct{}
)

type model struct {
	count int
}

func update(m model, msg vdom.Msg) model {
	switch msg.(type) {
	case increment:
		m.count++
	case decrement:
		m.count--
	case reset:
		m.count = 0
	}
	return m
}

func view(m model) *vdom.VNode {
	return vdom.Main(nil,
		vdom.H1(nil, vdom.Text("Counter")),
		vdom.Div([]vdom.Fact{vdom.Class("controls")},
			vdom.Button([]vdom.Fact{vdom.OnMsg("click", decrement{})}, vdom.Text("-")),
			vdom.Span([]vdom.Fact{vdom.Class("count")}, vdom.Textf("%d", m.count)),
			vdom.Button([]vdom.Fact{vdom.OnMsg("click", increment{})}, vdom.Text("+")),
		),
		vdom.Button([]vdom.Fact{vdom.OnMsg("click", reset{}), vdom.Class("reset")},
			vdom.Text("Reset")),
	)
}

// counterApp builds one session's counter instance.
func counterApp(opts ...engine.Option) *engine.Handle {
	p := engine.Program[model]{
		Init:   func() model { return model{} },
		Update: update,
		View:   view,
	}
	host := dom.CreateElement("body")
	return engine.Run(host, p, opts...).Handle()
}
