package ports

import "framedata/internal/domain"

// PrefsStore loads and saves user preferences
type PrefsStore interface {
	Load() (domain.Prefs, error)
	Save(prefs domain.Prefs) error

	// Path returns the location of the stored preferences
	Path() string
}
