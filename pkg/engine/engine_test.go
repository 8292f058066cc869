package engine

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alder-ui/alder/pkg/dom"
	"github.com/alder-ui/alder/pkg/vdom"
)

func view(count string) *vdom.VNode {
	return vdom.Div(nil,
		vdom.Span([]vdom.Fact{vdom.Class("count")}, vdom.Text(count)),
	)
}

func TestMountRendersInitialTree(t *testing.T) {
	host := dom.CreateElement("body")
	h := Mount(host, view("0"), WithFramer(&ManualFramer{}))

	got := h.Root().String()
	if !strings.Contains(got, `<span class="count">0</span>`) {
		t.Errorf("Root().String() = %q, want rendered count span", got)
	}
	if h.Host() != host {
		t.Errorf("Host() = %v, want the mount host", h.Host())
	}
}

func TestUpdateCommitsOnFrame(t *testing.T) {
	host := dom.CreateElement("body")
	framer := &ManualFramer{}
	h := Mount(host, view("0"), WithFramer(framer))

	h.Update(view("1"))
	if got := h.Root().String(); !strings.Contains(got, ">0<") {
		t.Errorf("tree changed before frame: %q", got)
	}

	framer.Step()
	if got := h.Root().String(); !strings.Contains(got, ">1<") {
		t.Errorf("Root().String() = %q, want committed count 1", got)
	}
}

func TestUpdateBurstCoalesces(t *testing.T) {
	host := dom.CreateElement("body")
	framer := &ManualFramer{}
	var commits int
	h := Mount(host, view("0"),
		WithFramer(framer),
		WithPatchObserver(func([]vdom.Patch) { commits++ }),
	)

	h.Update(view("1"))
	h.Update(view("2"))
	h.Update(view("3"))

	framer.Step()
	if commits != 1 {
		t.Errorf("commits = %d, want 1", commits)
	}
	if got := h.Root().String(); !strings.Contains(got, ">3<") {
		t.Errorf("Root().String() = %q, want latest staged tree", got)
	}

	// The spare frame finds nothing staged and commits nothing.
	framer.Step()
	if commits != 1 {
		t.Errorf("commits after spare frame = %d, want 1", commits)
	}
}

func TestPatchObserverSeesLocatedPatches(t *testing.T) {
	host := dom.CreateElement("body")
	framer := &ManualFramer{}
	var seen []vdom.Patch
	h := Mount(host, view("0"),
		WithFramer(framer),
		WithPatchObserver(func(ps []vdom.Patch) { seen = append(seen[:0], ps...) }),
	)

	h.Update(view("1"))
	framer.Step()

	if len(seen) != 1 {
		t.Fatalf("len(patches) = %d, want 1", len(seen))
	}
	if seen[0].Kind != vdom.PatchText {
		t.Errorf("patch kind = %v, want %v", seen[0].Kind, vdom.PatchText)
	}
	if seen[0].Target() == nil {
		t.Errorf("Target() = nil, want located live node")
	}
}

func TestMetricsCountCommits(t *testing.T) {
	host := dom.CreateElement("body")
	framer := &ManualFramer{}
	reg := prometheus.NewRegistry()
	h := Mount(host, view("0"),
		WithFramer(framer),
		WithMetrics(NewMetrics(reg)),
	)

	h.Update(view("1"))
	h.Update(view("2")) // coalesces
	framer.Step()

	fams, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := map[string]bool{}
	for _, f := range fams {
		found[f.GetName()] = true
	}
	for _, name := range []string{
		"alder_commit_cycles_total",
		"alder_patches_applied_total",
		"alder_frames_coalesced_total",
	} {
		if !found[name] {
			t.Errorf("metric %s not gathered", name)
		}
	}
}

func TestDispatchStalePath(t *testing.T) {
	host := dom.CreateElement("body")
	h := Mount(host, view("0"), WithFramer(&ManualFramer{}))

	if h.Dispatch([]int{0, 9}, dom.NewEvent("click", nil)) {
		t.Error("Dispatch() = true for missing node, want false")
	}
}

// Events arrive on connection read goroutines while timer frames commit;
// both sides must serialize on the tree lock. Run under -race.
func TestDispatchSerializesWithCommits(t *testing.T) {
	type incr struct{}

	p := Program[int]{
		Init:   func() int { return 0 },
		Update: func(m int, msg vdom.Msg) int { return m + 1 },
		View: func(m int) *vdom.VNode {
			return vdom.Div(nil,
				vdom.Button([]vdom.Fact{vdom.OnMsg("click", incr{})}, vdom.Text("+")),
				vdom.Span(nil, vdom.Textf("%d", m)),
			)
		},
	}

	host := dom.CreateElement("body")
	r := Run(host, p, WithFramer(&TickFramer{Interval: time.Millisecond}))

	const workers = 4
	const clicks = 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < clicks; i++ {
				if !r.Handle().Dispatch([]int{0, 0}, dom.NewEvent("click", nil)) {
					t.Error("Dispatch() = false, want button found")
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := r.Model(); got != workers*clicks {
		t.Errorf("Model() = %d, want %d", got, workers*clicks)
	}
}

func TestProgramCounter(t *testing.T) {
	type incr struct{}

	p := Program[int]{
		Init:   func() int { return 0 },
		Update: func(m int, msg vdom.Msg) int { return m + 1 },
		View: func(m int) *vdom.VNode {
			return vdom.Div(nil,
				vdom.Button([]vdom.Fact{vdom.OnMsg("click", incr{})}, vdom.Text("+")),
				vdom.Span(nil, vdom.Textf("%d", m)),
			)
		},
	}

	host := dom.CreateElement("body")
	framer := &ManualFramer{}
	r := Run(host, p, WithFramer(framer))

	button := r.Handle().Root().Resolve([]int{0})
	if button == nil || button.Tag != "button" {
		t.Fatalf("Resolve([0]) = %v, want button", button)
	}

	button.Fire(dom.NewEvent("click", nil))
	if r.Model() != 1 {
		t.Fatalf("Model() = %d, want 1 after click", r.Model())
	}
	framer.Step()
	if got := r.Handle().Root().String(); !strings.Contains(got, "<span>1</span>") {
		t.Errorf("Root().String() = %q, want counter at 1", got)
	}

	// Two clicks between frames still produce one commit with the
	// final model.
	button.Fire(dom.NewEvent("click", nil))
	button.Fire(dom.NewEvent("click", nil))
	framer.Step()
	if got := r.Handle().Root().String(); !strings.Contains(got, "<span>3</span>") {
		t.Errorf("Root().String() = %q, want counter at 3", got)
	}
}
