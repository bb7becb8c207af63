package catalog

import "encoding/json"

// Settings carries a book's narrative-setting value through both halves of
// the system. Scraped records hold the raw free-text block lifted from the
// page; the merge pipeline replaces the text with the recognized country
// names. The JSON shape follows suit: string before rectification, array
// after, null in either phase when the value is unknown.
type Settings struct {
	// Text is the scraped free-text block, nil once rectified or when
	// extraction failed.
	Text *string
	// Places holds the rectified country names. Meaningful only when
	// rectified is set; an empty list is a valid rectified value.
	Places []string

	rectified bool
}

// RawSettings wraps scraped free text.
func RawSettings(text string) Settings {
	return Settings{Text: &text}
}

// PlaceSettings wraps a rectified country list. A nil slice marshals as an
// empty array, not null.
func PlaceSettings(places []string) Settings {
	return Settings{Places: places, rectified: true}
}

// IsNull reports whether the value is unknown in its current phase.
func (s Settings) IsNull() bool {
	return !s.rectified && s.Text == nil
}

// Rectified reports whether the value has been through the pipeline's
// settings pass.
func (s Settings) Rectified() bool {
	return s.rectified
}

// MarshalJSON emits null, the raw string, or the rectified array depending
// on phase.
func (s Settings) MarshalJSON() ([]byte, error) {
	if s.rectified {
		places := s.Places
		if places == nil {
			places = []string{}
		}
		return json.Marshal(places)
	}
	if s.Text == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*s.Text)
}

// UnmarshalJSON accepts all three shapes so shards written before and after
// a pipeline run both load.
func (s *Settings) UnmarshalJSON(data []byte) error {
	*s = Settings{}
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var places []string
		if err := json.Unmarshal(data, &places); err != nil {
			return err
		}
		*s = PlaceSettings(places)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*s = RawSettings(text)
	return nil
}
