package prefsfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framedata/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "conf", "prefs.yaml"), nil)
	require.NoError(t, err)
	return s
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	s := newTestStore(t)

	prefs, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPrefs(), prefs)
}

func TestSaveLoad(t *testing.T) {
	s := newTestStore(t)
	want := domain.Prefs{
		ProxyMode:     domain.ModeGlobal,
		DefaultProxy:  1,
		FallbackProxy: 0,
		Proxies:       []string{"direct", "tor", "corp"},
		Keys:          map[string]string{"mode_key": "accel shift R"},
	}

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
	assert.Equal(t, "prefs.yaml", entries[0].Name())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.Prefs
		wantErr bool
	}{
		{
			name:    "partial file keeps defaults",
			content: "proxy_mode: disabled\n",
			want: domain.Prefs{
				ProxyMode:     domain.ModeDisabled,
				FallbackProxy: -1,
				Proxies:       []string{"direct"},
			},
		},
		{
			name:    "mode is case insensitive",
			content: "proxy_mode: GLOBAL\nproxies: [a, b]\ndefault_proxy: 1\n",
			want: domain.Prefs{
				ProxyMode:     domain.ModeGlobal,
				DefaultProxy:  1,
				FallbackProxy: -1,
				Proxies:       []string{"a", "b"},
			},
		},
		{
			name:    "empty mode means auto",
			content: "proxy_mode: \"\"\n",
			want:    domain.DefaultPrefs(),
		},
		{
			name:    "unknown mode",
			content: "proxy_mode: sometimes\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "proxies: [a\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0644))

			got, err := s.Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	s, err := New("~/prefs.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "prefs.yaml"), s.Path())
}
