package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// FeedItem is a single entry pulled from a regulator feed.
type FeedItem struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Link        string    `json:"link" validate:"required,url"`
	PublishedAt time.Time `json:"publishedAt" validate:"required"`
	GUID        string    `json:"guid"`
	Source      string    `json:"source,omitempty"`
}

// Content returns title and description joined for keyword scanning.
func (f FeedItem) Content() string {
	return f.Title + " " + f.Description
}

// AnalysisID derives the storage key for an item: the GUID when present,
// otherwise a slug of the title suffixed with the publication date.
func AnalysisID(item FeedItem) string {
	if guid := strings.TrimSpace(item.GUID); guid != "" {
		return guid
	}

	slug := slugify(item.Title)
	if slug == "" {
		slug = "regulation"
	}
	if item.PublishedAt.IsZero() {
		return slug
	}
	return fmt.Sprintf("%s-%s", slug, item.PublishedAt.UTC().Format("2006-01-02"))
}

const maxSlugLength = 60

func slugify(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(value) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimSuffix(slug[:maxSlugLength], "-")
	}
	return slug
}
