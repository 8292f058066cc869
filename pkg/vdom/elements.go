package vdom

// Factory functions for common HTML elements. Each takes the element's
// facts followed by its children:
//
//	Div([]Fact{Attr("class", "card")},
//	    H1(nil, Text("Title")),
//	    P(nil, Text("Content")),
//	)

func Div(facts []Fact, children ...*VNode) *VNode  { return Element("div", facts, children...) }
func Span(facts []Fact, children ...*VNode) *VNode { return Element("span", facts, children...) }
func P(facts []Fact, children ...*VNode) *VNode    { return Element("p", facts, children...) }
func A(facts []Fact, children ...*VNode) *VNode    { return Element("a", facts, children...) }

func H1(facts []Fact, children ...*VNode) *VNode { return Element("h1", facts, children...) }
func H2(facts []Fact, children ...*VNode) *VNode { return Element("h2", facts, children...) }
func H3(facts []Fact, children ...*VNode) *VNode { return Element("h3", facts, children...) }

func Ul(facts []Fact, children ...*VNode) *VNode { return Element("ul", facts, children...) }
func Ol(facts []Fact, children ...*VNode) *VNode { return Element("ol", facts, children...) }
func Li(facts []Fact, children ...*VNode) *VNode { return Element("li", facts, children...) }

func Button(facts []Fact, children ...*VNode) *VNode {
	return Element("button", facts, children...)
}

func Input(facts []Fact) *VNode    { return Element("input", facts) }
func Label(facts []Fact, children ...*VNode) *VNode {
	return Element("label", facts, children...)
}
func Form(facts []Fact, children ...*VNode) *VNode {
	return Element("form", facts, children...)
}

func Table(facts []Fact, children ...*VNode) *VNode {
	return Element("table", facts, children...)
}
func Tr(facts []Fact, children ...*VNode) *VNode { return Element("tr", facts, children...) }
func Td(facts []Fact, children ...*VNode) *VNode { return Element("td", facts, children...) }

func Img(facts []Fact) *VNode { return Element("img", facts) }

func Section(facts []Fact, children ...*VNode) *VNode {
	return Element("section", facts, children...)
}
func Header(facts []Fact, children ...*VNode) *VNode {
	return Element("header", facts, children...)
}
func Footer(facts []Fact, children ...*VNode) *VNode {
	return Element("footer", facts, children...)
}
func Nav(facts []Fact, children ...*VNode) *VNode { return Element("nav", facts, children...) }
func Main(facts []Fact, children ...*VNode) *VNode {
	return Element("main", facts, children...)
}

// Class is shorthand for the class attribute, the most common fact.
func Class(names string) Fact { return Attr("class", names) }

// ID is shorthand for the id attribute.
func ID(id string) Fact { return Attr("id", id) }
