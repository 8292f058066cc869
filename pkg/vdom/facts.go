package vdom

// FactKind is the category of a single fact descriptor.
type FactKind uint8

const (
	FactAttr   FactKind = iota // Host attribute
	FactAttrNS                 // Namespaced host attribute
	FactProp                   // Direct settable property
	FactStyle                  // Inline style property
	FactEvent                  // Event listener
)

// Fact is one flat (key, value) descriptor passed to Element. A single
// organization pass folds a fact list into the categorized FactSet.
type Fact struct {
	Kind      FactKind
	Key       string
	Namespace string // FactAttrNS only
	Value     any    // string for attr/style, Handler for event, any for prop
}

// NSValue is a namespaced attribute value.
type NSValue struct {
	Namespace string
	Value     string
}

// FactSet is the categorized view of an element's facts.
type FactSet struct {
	Styles  map[string]string
	Events  map[string]Handler
	Attrs   map[string]string
	AttrsNS map[string]NSValue
	Props   map[string]any
}

// namespaceKey is the reserved property key that sets an element's
// namespace. It is extracted during organization and never stored.
const namespaceKey = "namespace"

// OrganizeFacts folds a flat ordered fact list into a FactSet, later
// entries overriding earlier ones for the same sub-key. The reserved
// namespace key is returned separately.
func OrganizeFacts(facts []Fact) (*FactSet, string) {
	fs := &FactSet{}
	namespace := ""

	for _, f := range facts {
		switch f.Kind {
		case FactStyle:
			if fs.Styles == nil {
				fs.Styles = make(map[string]string)
			}
			fs.Styles[f.Key], _ = f.Value.(string)

		case FactEvent:
			if fs.Events == nil {
				fs.Events = make(map[string]Handler)
			}
			if h, ok := f.Value.(Handler); ok {
				fs.Events[f.Key] = h
			}

		case FactAttr:
			if fs.Attrs == nil {
				fs.Attrs = make(map[string]string)
			}
			fs.Attrs[f.Key], _ = f.Value.(string)

		case FactAttrNS:
			if fs.AttrsNS == nil {
				fs.AttrsNS = make(map[string]NSValue)
			}
			value, _ := f.Value.(string)
			fs.AttrsNS[f.Key] = NSValue{Namespace: f.Namespace, Value: value}

		case FactProp:
			if f.Key == namespaceKey {
				namespace, _ = f.Value.(string)
				continue
			}
			if fs.Props == nil {
				fs.Props = make(map[string]any)
			}
			fs.Props[f.Key] = f.Value
		}
	}

	return fs, namespace
}

// FactDelta is the per-category change set between two fact sets. Each
// category uses its own removal marker: empty string for styles, nil
// pointers for attributes and events, nil values for properties.
type FactDelta struct {
	Styles  map[string]string
	Events  map[string]*Handler
	Attrs   map[string]*string
	AttrsNS map[string]*NSValue
	Props   map[string]any
}

// Empty reports whether the delta changes nothing.
func (d *FactDelta) Empty() bool {
	return d == nil ||
		len(d.Styles) == 0 && len(d.Events) == 0 && len(d.Attrs) == 0 &&
			len(d.AttrsNS) == 0 && len(d.Props) == 0
}

// asDelta views a full fact set as a delta of pure additions. Used when a
// node is first rendered.
func (fs *FactSet) asDelta() *FactDelta {
	d := &FactDelta{}
	if fs == nil {
		return d
	}
	if len(fs.Styles) > 0 {
		d.Styles = fs.Styles
	}
	if len(fs.Attrs) > 0 {
		d.Attrs = make(map[string]*string, len(fs.Attrs))
		for k := range fs.Attrs {
			v := fs.Attrs[k]
			d.Attrs[k] = &v
		}
	}
	if len(fs.AttrsNS) > 0 {
		d.AttrsNS = make(map[string]*NSValue, len(fs.AttrsNS))
		for k := range fs.AttrsNS {
			v := fs.AttrsNS[k]
			d.AttrsNS[k] = &v
		}
	}
	if len(fs.Events) > 0 {
		d.Events = make(map[string]*Handler, len(fs.Events))
		for k := range fs.Events {
			h := fs.Events[k]
			d.Events[k] = &h
		}
	}
	if len(fs.Props) > 0 {
		d.Props = fs.Props
	}
	return d
}

// diffFacts computes the change set between two fact sets. Returns nil
// when nothing changed.
func diffFacts(old, new *FactSet) *FactDelta {
	if old == nil {
		old = &FactSet{}
	}
	if new == nil {
		new = &FactSet{}
	}
	d := &FactDelta{}

	// Styles: removal is the empty string, which hosts treat as a clear.
	for k, oldV := range old.Styles {
		if newV, ok := new.Styles[k]; !ok {
			setStyleDelta(d, k, "")
		} else if newV != oldV {
			setStyleDelta(d, k, newV)
		}
	}
	for k, newV := range new.Styles {
		if _, ok := old.Styles[k]; !ok {
			setStyleDelta(d, k, newV)
		}
	}

	for k, oldV := range old.Attrs {
		if newV, ok := new.Attrs[k]; !ok {
			setAttrDelta(d, k, nil)
		} else if newV != oldV {
			v := newV
			setAttrDelta(d, k, &v)
		}
	}
	for k := range new.Attrs {
		if _, ok := old.Attrs[k]; !ok {
			v := new.Attrs[k]
			setAttrDelta(d, k, &v)
		}
	}

	for k, oldV := range old.AttrsNS {
		if newV, ok := new.AttrsNS[k]; !ok {
			setAttrNSDelta(d, k, nil)
		} else if newV != oldV {
			v := newV
			setAttrNSDelta(d, k, &v)
		}
	}
	for k := range new.AttrsNS {
		if _, ok := old.AttrsNS[k]; !ok {
			v := new.AttrsNS[k]
			setAttrNSDelta(d, k, &v)
		}
	}

	// Events compare by decoder identity plus options, not by presence.
	for k, oldH := range old.Events {
		if newH, ok := new.Events[k]; !ok {
			setEventDelta(d, k, nil)
		} else if !newH.equal(oldH) {
			h := newH
			setEventDelta(d, k, &h)
		}
	}
	for k := range new.Events {
		if _, ok := old.Events[k]; !ok {
			h := new.Events[k]
			setEventDelta(d, k, &h)
		}
	}

	// Properties skip identity-equal values, except the form-control sync
	// keys whose native state can drift from the declared value.
	for k, oldV := range old.Props {
		if newV, ok := new.Props[k]; !ok {
			setPropDelta(d, k, nil)
		} else if !sameRef(oldV, newV) || alwaysReapplied(k) {
			setPropDelta(d, k, newV)
		}
	}
	for k := range new.Props {
		if _, ok := old.Props[k]; !ok {
			setPropDelta(d, k, new.Props[k])
		}
	}

	if d.Empty() {
		return nil
	}
	return d
}

// alwaysReapplied lists property keys that must reach the live node on
// every diff even when the declared value has not changed, because the
// host mutates the underlying native state out from under us.
func alwaysReapplied(key string) bool {
	return key == "value" || key == "checked"
}

func setStyleDelta(d *FactDelta, k, v string) {
	if d.Styles == nil {
		d.Styles = make(map[string]string)
	}
	d.Styles[k] = v
}

func setAttrDelta(d *FactDelta, k string, v *string) {
	if d.Attrs == nil {
		d.Attrs = make(map[string]*string)
	}
	d.Attrs[k] = v
}

func setAttrNSDelta(d *FactDelta, k string, v *NSValue) {
	if d.AttrsNS == nil {
		d.AttrsNS = make(map[string]*NSValue)
	}
	d.AttrsNS[k] = v
}

func setEventDelta(d *FactDelta, k string, h *Handler) {
	if d.Events == nil {
		d.Events = make(map[string]*Handler)
	}
	d.Events[k] = h
}

func setPropDelta(d *FactDelta, k string, v any) {
	if d.Props == nil {
		d.Props = make(map[string]any)
	}
	d.Props[k] = v
}
