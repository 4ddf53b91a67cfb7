package registry

import (
	"fmt"
	"runtime"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"framedata/internal/domain"
)

// Property: register/unregister behave like an ordered set and only changes
// produce refresh notifications.
func TestProperty_SubdocumentSetSemantics(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reg := New(nil, nil)
		var refreshes int
		reg.Notifier().Subscribe(ListenerFunc(func(_ *domain.Window, ev domain.EventType, _ *WindowRecord) error {
			if ev == domain.EventRefresh {
				refreshes++
			}
			return nil
		}))

		top := domain.NewWindow("top", "https://top.example/")
		topRec, err := reg.GetOrCreate(top)
		require.NoError(rt, err)

		n := rapid.IntRange(1, 5).Draw(rt, "children")
		children := make([]*WindowRecord, n)
		windows := make([]*domain.Window, n)
		for i := range children {
			windows[i] = domain.NewWindow(fmt.Sprintf("c%d", i), "https://child.example/")
			rec, err := reg.GetOrCreate(windows[i])
			require.NoError(rt, err)
			children[i] = rec
		}

		model := []RecordID{}
		wantRefreshes := 0
		steps := rapid.IntRange(0, 40).Draw(rt, "steps")
		for range steps {
			child := children[rapid.IntRange(0, n-1).Draw(rt, "child")]
			if rapid.Bool().Draw(rt, "register") {
				require.NoError(rt, reg.RegisterSubdocument(top, child))
				if !slices.Contains(model, child.ID()) {
					model = append(model, child.ID())
					wantRefreshes++
				}
			} else {
				require.NoError(rt, reg.UnregisterSubdocument(top, child))
				if slices.Contains(model, child.ID()) {
					model = slices.DeleteFunc(model, func(id RecordID) bool { return id == child.ID() })
					wantRefreshes++
				}
			}
		}

		got := []RecordID{}
		for _, sub := range topRec.Subdocuments() {
			got = append(got, sub.ID())
		}
		require.Equal(rt, model, got)
		require.Equal(rt, wantRefreshes, refreshes)
		runtime.KeepAlive(windows)
		runtime.KeepAlive(top)
	})
}

// Property: AllLocations is the concatenation of every window's own
// locations, parent first, frames in registration order, and Location agrees
// with the first hit of that traversal.
func TestProperty_TraversalOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reg := New(nil, nil)
		top := domain.NewWindow("top", "https://top.example/")
		windows := []*domain.Window{top}
		for i := range rapid.IntRange(0, 4).Draw(rt, "frames") {
			f := domain.NewWindow(fmt.Sprintf("f%d", i), "https://frame.example/")
			top.AppendFrame(f)
			windows = append(windows, f)
		}

		urls := []string{"a", "b", "c", "d"}
		for range rapid.IntRange(0, 20).Draw(rt, "loads") {
			w := windows[rapid.IntRange(0, len(windows)-1).Draw(rt, "window")]
			u := rapid.SampledFrom(urls).Draw(rt, "url")
			_, err := reg.Track(w, domain.TypeImage, "https://cdn.example/"+u, nil, nil)
			require.NoError(rt, err)
		}

		topRec, err := reg.GetOrCreate(top)
		require.NoError(rt, err)

		var want []*domain.LocationRecord
		want = append(want, topRec.Locations()...)
		for _, sub := range topRec.Subdocuments() {
			want = append(want, sub.Locations()...)
		}
		require.Equal(rt, want, topRec.AllLocations())

		for _, u := range urls {
			url := "https://cdn.example/" + u
			got, ok := topRec.Location(domain.TypeImage, url)
			idx := slices.IndexFunc(want, func(l *domain.LocationRecord) bool { return l.Key.URL == url })
			if idx < 0 {
				require.False(rt, ok)
				continue
			}
			require.True(rt, ok)
			require.Same(rt, want[idx], got)
		}
		runtime.KeepAlive(top)
	})
}
