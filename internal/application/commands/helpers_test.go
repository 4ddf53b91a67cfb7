package commands

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"framedata/internal/domain"
	"framedata/internal/registry"
)

// fakeHost is an in-memory BrowserHost. Replay understands one window id per line.
type fakeHost struct {
	windows map[string]*domain.Window
	order   []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{windows: make(map[string]*domain.Window)}
}

func (h *fakeHost) add(w *domain.Window) *domain.Window {
	h.windows[w.ID] = w
	h.order = append(h.order, w.ID)
	return w
}

func (h *fakeHost) Window(id string) (*domain.Window, bool) {
	w, ok := h.windows[id]
	return w, ok
}

func (h *fakeHost) TopWindows() []*domain.Window {
	var tops []*domain.Window
	for _, id := range h.order {
		if w := h.windows[id]; w.IsTop() {
			tops = append(tops, w)
		}
	}
	return tops
}

func (h *fakeHost) Replay(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, id := range strings.Fields(string(data)) {
		if id == "fail" {
			return n, errors.New("bad event")
		}
		h.add(domain.NewWindow(id, "https://"+id+".example/"))
		n++
	}
	return n, nil
}

type memPrefs struct {
	path    string
	prefs   domain.Prefs
	saves   int
	loadErr error
	saveErr error
}

func (m *memPrefs) Load() (domain.Prefs, error) {
	if m.loadErr != nil {
		return domain.Prefs{}, m.loadErr
	}
	p := m.prefs
	p.Proxies = append([]string(nil), m.prefs.Proxies...)
	return p, nil
}

func (m *memPrefs) Path() string {
	return m.path
}

func (m *memPrefs) Save(p domain.Prefs) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.prefs = p
	m.saves++
	return nil
}

// tabFixture is a tab with one frame and tracked locations in both
type tabFixture struct {
	host  *fakeHost
	reg   *registry.Registry
	tab   *domain.Window
	frame *domain.Window
}

func newTabFixture(t *testing.T) *tabFixture {
	t.Helper()
	f := &tabFixture{host: newFakeHost(), reg: registry.New(nil, nil)}
	f.tab = f.host.add(domain.NewWindow("tab", "https://news.example/"))
	f.frame = f.host.add(domain.NewWindow("frame", "https://ads.example/"))
	f.tab.AppendFrame(f.frame)

	track := func(w *domain.Window, typ domain.ContentType, url, rule string, whitelist bool) {
		var m *domain.Match
		if rule != "" {
			m = &domain.Match{Rule: rule, Whitelist: whitelist}
		}
		_, err := f.reg.Track(w, typ, url, nil, m)
		require.NoError(t, err)
	}
	track(f.tab, domain.TypeScript, "https://cdn.example/a.js", "||cdn.example^", false)
	track(f.tab, domain.TypeImage, "https://cdn.example/a.png", "||cdn.example^", false)
	track(f.tab, domain.TypeImage, "https://news.example/logo.png", "", false)
	track(f.frame, domain.TypeScript, "https://ads.example/ad.js", "||ads.example^", false)
	track(f.frame, domain.TypeImage, "https://ok.example/pixel.gif", "@@||ok.example^", true)
	return f
}
