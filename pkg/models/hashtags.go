package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Hashtags is stored as a single comma-joined text column. Tags never contain
// a comma because FormatHashtags splits on it.
type Hashtags []string

func (h Hashtags) Value() (driver.Value, error) {
	return strings.Join(h, ","), nil
}

func (h *Hashtags) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*h = Hashtags{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("hashtags: unsupported column type %T", src)
	}

	if raw == "" {
		*h = Hashtags{}
		return nil
	}
	*h = strings.Split(raw, ",")
	return nil
}

// FormatHashtags turns free text like "a, #b ,c" into ["#a", "#b", "#c"].
// Input order is kept and duplicates are not removed.
func FormatHashtags(text string) Hashtags {
	tags := Hashtags{}
	for _, piece := range strings.Split(text, ",") {
		tag := strings.TrimSpace(piece)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tags = append(tags, tag)
	}
	return tags
}
