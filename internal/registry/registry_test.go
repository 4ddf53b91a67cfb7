package registry

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framedata/internal/domain"
)

type event struct {
	window string
	kind   domain.EventType
	record RecordID
}

type recorder struct {
	events []event
}

func (r *recorder) HandleWindowEvent(w *domain.Window, kind domain.EventType, rec *WindowRecord) error {
	r.events = append(r.events, event{window: w.ID, kind: kind, record: rec.ID()})
	return nil
}

func (r *recorder) reset() {
	r.events = nil
}

func newTestRegistry(t *testing.T) (*Registry, *recorder) {
	t.Helper()
	reg := New(NewNotifier(nil), nil)
	rec := &recorder{}
	reg.Notifier().Subscribe(rec)
	return reg, rec
}

// newWindow creates a window that stays reachable until the test ends, so its
// record is not released while assertions run.
func newWindow(t *testing.T, id, url string) *domain.Window {
	t.Helper()
	w := domain.NewWindow(id, url)
	t.Cleanup(func() { runtime.KeepAlive(w) })
	return w
}

// tabWithFrames builds a top window with one frame per url
func tabWithFrames(t *testing.T, id string, frameURLs ...string) (*domain.Window, []*domain.Window) {
	t.Helper()
	top := newWindow(t, id, "https://"+id+".example/")
	frames := make([]*domain.Window, 0, len(frameURLs))
	for i, u := range frameURLs {
		f := newWindow(t, fmt.Sprintf("%s-frame%d", id, i), u)
		top.AppendFrame(f)
		frames = append(frames, f)
	}
	return top, frames
}

func TestGetOrCreate_SameIdentity(t *testing.T) {
	reg, _ := newTestRegistry(t)
	w := newWindow(t, "w", "https://a.example/")

	first, err := reg.GetOrCreate(w)
	require.NoError(t, err)
	second, err := reg.GetOrCreate(w)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, first.IsTop())
	assert.Same(t, first, first.Top())
	assert.False(t, first.Detached())
}

func TestGetOrCreate_FrameLinksToTop(t *testing.T) {
	reg, events := newTestRegistry(t)
	top, frames := tabWithFrames(t, "t", "https://frame.example/")

	topRec, err := reg.GetOrCreate(top)
	require.NoError(t, err)
	assert.Empty(t, events.events, "creating a top record does not notify")

	frameRec, err := reg.GetOrCreate(frames[0])
	require.NoError(t, err)

	assert.False(t, frameRec.IsTop())
	assert.Same(t, topRec, frameRec.Top())
	assert.Equal(t, []*WindowRecord{frameRec}, topRec.Subdocuments())
	assert.Equal(t, []event{{window: "t", kind: domain.EventRefresh, record: topRec.ID()}}, events.events)

	_, err = reg.GetOrCreate(frames[0])
	require.NoError(t, err)
	assert.Len(t, topRec.Subdocuments(), 1)
	assert.Len(t, events.events, 1)
}

func TestGetOrCreate_NestedFrameRegistersWithTop(t *testing.T) {
	reg, _ := newTestRegistry(t)
	top, frames := tabWithFrames(t, "t", "https://outer.example/")
	inner := newWindow(t, "inner", "https://inner.example/")
	frames[0].AppendFrame(inner)

	innerRec, err := reg.GetOrCreate(inner)
	require.NoError(t, err)

	topRec, ok := reg.Lookup(top)
	require.True(t, ok)
	assert.Same(t, topRec, innerRec.Top())
	assert.Equal(t, []*WindowRecord{innerRec}, topRec.Subdocuments())

	_, ok = reg.Lookup(frames[0])
	assert.False(t, ok, "intermediate frames are not created eagerly")
}

func TestGetOrCreate_NavigationYieldsFreshRecord(t *testing.T) {
	reg, _ := newTestRegistry(t)
	w := newWindow(t, "w", "https://a.example/")

	before, err := reg.GetOrCreate(w)
	require.NoError(t, err)
	w.Navigate("https://b.example/")
	after, err := reg.GetOrCreate(w)
	require.NoError(t, err)

	assert.NotSame(t, before, after)
	assert.Equal(t, "https://b.example/", after.URL())
}

func TestRegisterSubdocument_Idempotent(t *testing.T) {
	reg, events := newTestRegistry(t)
	top, _ := tabWithFrames(t, "t")
	other := newWindow(t, "o", "https://other.example/")

	topRec, err := reg.GetOrCreate(top)
	require.NoError(t, err)
	otherRec, err := reg.GetOrCreate(other)
	require.NoError(t, err)

	require.NoError(t, reg.RegisterSubdocument(top, otherRec))
	require.NoError(t, reg.RegisterSubdocument(top, otherRec))
	assert.Equal(t, []*WindowRecord{otherRec}, topRec.Subdocuments())
	assert.Len(t, events.events, 1)

	require.NoError(t, reg.UnregisterSubdocument(top, otherRec))
	require.NoError(t, reg.UnregisterSubdocument(top, otherRec))
	assert.Empty(t, topRec.Subdocuments())
	assert.Len(t, events.events, 2)
}

func TestLocations_DepthFirstOrder(t *testing.T) {
	reg, _ := newTestRegistry(t)
	top, frames := tabWithFrames(t, "t", "https://f0.example/", "https://f1.example/")

	track := func(w *domain.Window, url string) *domain.LocationRecord {
		t.Helper()
		loc, err := reg.Track(w, domain.TypeImage, url, nil, nil)
		require.NoError(t, err)
		return loc
	}

	a := track(top, "https://cdn.example/a.png")
	b := track(top, "https://cdn.example/b.png")
	c := track(frames[0], "https://cdn.example/c.png")
	d := track(frames[1], "https://cdn.example/d.png")
	shared := track(frames[1], "https://cdn.example/shared.png")
	track(frames[0], "https://cdn.example/shared.png")

	topRec, _ := reg.Lookup(top)
	f0, _ := reg.Lookup(frames[0])

	all := topRec.AllLocations()
	require.Len(t, all, 6)
	assert.Equal(t, []*domain.LocationRecord{a, b}, all[:2])
	assert.Same(t, c, all[2])
	assert.Same(t, d, all[4])
	assert.Same(t, shared, all[5])

	got, ok := topRec.Location(domain.TypeImage, "https://cdn.example/shared.png")
	require.True(t, ok)
	f0Shared, _ := f0.Location(domain.TypeImage, "https://cdn.example/shared.png")
	assert.Same(t, f0Shared, got, "first registered subdocument wins")

	_, ok = topRec.Location(domain.TypeScript, "https://cdn.example/a.png")
	assert.False(t, ok, "content type is part of the key")

	_, ok = f0.Location(domain.TypeImage, "https://cdn.example/d.png")
	assert.False(t, ok, "sibling frames are not searched")
}

func TestTrack_ReusesLocation(t *testing.T) {
	reg, events := newTestRegistry(t)
	w := newWindow(t, "w", "https://a.example/")
	img1 := domain.NewNode("img1", "img")
	img2 := domain.NewNode("img2", "img")
	w.Document().Root.AppendChild(img1)
	w.Document().Root.AppendChild(img2)

	first, err := reg.Track(w, domain.TypeImage, "https://ads.example/x.gif", img1, nil)
	require.NoError(t, err)
	second, err := reg.Track(w, domain.TypeImage, "https://ads.example/x.gif", img2, &domain.Match{Rule: "||ads.example^"})
	require.NoError(t, err)
	_, err = reg.Track(w, domain.TypeImage, "https://ads.example/x.gif", img1, nil)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []*domain.Node{img1, img2}, first.Nodes())
	require.NotNil(t, first.Match)
	assert.Equal(t, "||ads.example^", first.Match.Rule)
	assert.True(t, first.Proxied())
	assert.Empty(t, events.events, "tracking does not notify")
}

func TestTrack_NodeMovesToNewLocation(t *testing.T) {
	reg, _ := newTestRegistry(t)
	w := newWindow(t, "w", "https://a.example/")
	img := domain.NewNode("img", "img")
	w.Document().Root.AppendChild(img)

	first, err := reg.Track(w, domain.TypeImage, "https://cdn.example/1.png", img, nil)
	require.NoError(t, err)
	second, err := reg.Track(w, domain.TypeImage, "https://cdn.example/2.png", img, nil)
	require.NoError(t, err)

	assert.Empty(t, first.Nodes())
	assert.Equal(t, []*domain.Node{img}, second.Nodes())
	_, loc, ok := reg.LookupByNode(img, true)
	require.True(t, ok)
	assert.Same(t, second, loc)

	w.Document().Root.RemoveChild(img)
	reg.NodeRemoved(img)
	assert.Empty(t, first.Nodes())
	assert.Empty(t, second.Nodes())
}

func TestLookupByNode(t *testing.T) {
	reg, _ := newTestRegistry(t)
	w := newWindow(t, "w", "https://a.example/")
	object := domain.NewNode("obj", "object")
	param := domain.NewNode("param", "param")
	stray := domain.NewNode("stray", "div")
	w.Document().Root.AppendChild(object)
	w.Document().Root.AppendChild(stray)
	object.AppendChild(param)

	loc, err := reg.Track(w, domain.TypeObject, "https://media.example/movie.swf", object, nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		node     *domain.Node
		stop     bool
		wantNode *domain.Node
		wantOK   bool
	}{
		{name: "node itself", node: object, wantNode: object, wantOK: true},
		{name: "ancestor walk", node: param, wantNode: object, wantOK: true},
		{name: "stop at first miss", node: param, stop: true},
		{name: "no data anywhere", node: stray},
		{name: "never attached", node: domain.NewNode("x", "span")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, got, ok := reg.LookupByNode(tt.node, tt.stop)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, node)
				assert.Nil(t, got)
				return
			}
			assert.Same(t, tt.wantNode, node)
			assert.Same(t, loc, got)
		})
	}
}

func TestRemoveNode(t *testing.T) {
	reg, _ := newTestRegistry(t)
	w := newWindow(t, "w", "https://a.example/")
	a := domain.NewNode("a", "img")
	b := domain.NewNode("b", "img")
	c := domain.NewNode("c", "script")

	shared, err := reg.Track(w, domain.TypeImage, "https://cdn.example/a.png", a, nil)
	require.NoError(t, err)
	_, err = reg.Track(w, domain.TypeImage, "https://cdn.example/a.png", b, nil)
	require.NoError(t, err)
	script, err := reg.Track(w, domain.TypeScript, "https://cdn.example/s.js", c, nil)
	require.NoError(t, err)

	reg.RemoveNode(a)
	assert.Equal(t, []*domain.Node{b}, shared.Nodes())
	assert.Equal(t, []*domain.Node{c}, script.Nodes())

	reg.RemoveNode(a)
	assert.Equal(t, []*domain.Node{b}, shared.Nodes())

	reg.RemoveNode(domain.NewNode("unknown", "div"))
	assert.Equal(t, []*domain.Node{b}, shared.Nodes())
}

func TestNodeRemoved_PrunesSubtree(t *testing.T) {
	reg, _ := newTestRegistry(t)
	w := newWindow(t, "w", "https://a.example/")
	div := domain.NewNode("div", "div")
	img := domain.NewNode("img", "img")
	w.Document().Root.AppendChild(div)
	div.AppendChild(img)

	loc, err := reg.Track(w, domain.TypeImage, "https://cdn.example/a.png", img, nil)
	require.NoError(t, err)

	w.Document().Root.RemoveChild(div)
	reg.NodeRemoved(div)

	assert.Empty(t, loc.Nodes())
	_, ok := reg.Lookup(w)
	assert.True(t, ok)
}

func TestSubscriberCanQueryDuringNotification(t *testing.T) {
	reg := New(nil, nil)
	top, frames := tabWithFrames(t, "t", "https://f.example/")
	_, err := reg.Track(frames[0], domain.TypeImage, "https://cdn.example/a.png", nil, nil)
	require.NoError(t, err)

	var seen []int
	reg.Notifier().Subscribe(ListenerFunc(func(w *domain.Window, _ domain.EventType, rec *WindowRecord) error {
		seen = append(seen, len(rec.AllLocations()))
		return nil
	}))

	frameRec, _ := reg.Lookup(frames[0])
	require.NoError(t, reg.UnregisterSubdocument(top, frameRec))
	require.NoError(t, reg.RegisterSubdocument(top, frameRec))

	assert.Equal(t, []int{0, 1}, seen)
}

func TestRecordReleasedWithDocument(t *testing.T) {
	reg, _ := newTestRegistry(t)
	top, frames := tabWithFrames(t, "t", "https://f.example/")

	_, err := reg.GetOrCreate(frames[0])
	require.NoError(t, err)
	topRec, ok := reg.Lookup(top)
	require.True(t, ok)
	require.Len(t, topRec.Subdocuments(), 1)
	require.Equal(t, 2, reg.Stats().Records)

	frames[0].Navigate("https://elsewhere.example/")

	require.Eventually(t, func() bool {
		runtime.GC()
		return reg.Stats().Records == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Empty(t, topRec.Subdocuments())
}
