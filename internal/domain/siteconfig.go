package domain

import "time"

// Default site configuration values, used when the singleton row is absent
// or a field was never set.
const (
	DefaultSayrightURL   = "https://sayright.gottaspeak.com"
	DefaultLessonJoinURL = "https://meet.jit.si"
)

// SiteConfig is the singleton site-wide configuration record.
// LessonJoinURL is the base meeting URL the join resolver builds on.
type SiteConfig struct {
	SayrightURL   string
	LessonJoinURL string
	SupportEmail  string
	Languages     []string
	UpdatedAt     time.Time
}

// DefaultSiteConfig returns the configuration used when nothing is stored.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		SayrightURL:   DefaultSayrightURL,
		LessonJoinURL: DefaultLessonJoinURL,
		Languages:     []string{"pl", "en", "es"},
	}
}
