package integration

import (
	"bytes"
	"encoding/json"
	"maps"
)

// LanguageCode identifies one translation of a localized store field
type LanguageCode string

const (
	LanguagePortuguese LanguageCode = "pt"
	LanguageEnglish    LanguageCode = "en"
	LanguageSpanish    LanguageCode = "es"
)

// resolutionOrder is the order in which translations are tried
var resolutionOrder = []LanguageCode{LanguagePortuguese, LanguageEnglish, LanguageSpanish}

type textKind uint8

const (
	textAbsent textKind = iota
	textPlain
	textLocalized
)

// LocalizedText is a store field that is either absent, a plain string, or a
// mapping from language code to string. The zero value is absent.
type LocalizedText struct {
	kind   textKind
	plain  string
	values map[LanguageCode]string
}

// PlainText returns a LocalizedText holding a single untranslated string
func PlainText(s string) LocalizedText {
	return LocalizedText{kind: textPlain, plain: s}
}

// Localized returns a LocalizedText holding one string per language.
// The map is copied.
func Localized(values map[LanguageCode]string) LocalizedText {
	copied := make(map[LanguageCode]string, len(values))
	maps.Copy(copied, values)
	return LocalizedText{kind: textLocalized, values: copied}
}

// IsAbsent returns true when the field was missing or null
func (t LocalizedText) IsAbsent() bool {
	return t.kind == textAbsent
}

// IsPlain returns true for the plain string form
func (t LocalizedText) IsPlain() bool {
	return t.kind == textPlain
}

// IsLocalized returns true for the per-language form
func (t LocalizedText) IsLocalized() bool {
	return t.kind == textLocalized
}

// Translation returns the text for one language of the per-language form
func (t LocalizedText) Translation(lang LanguageCode) (string, bool) {
	if t.kind != textLocalized {
		return "", false
	}
	v, ok := t.values[lang]
	return v, ok
}

// Resolve picks the text to publish. A plain string is used verbatim, even
// when empty. The per-language form yields the first non-empty value of pt,
// en and es in that order. Anything else yields fallback.
func (t LocalizedText) Resolve(fallback string) string {
	switch t.kind {
	case textPlain:
		return t.plain
	case textLocalized:
		for _, lang := range resolutionOrder {
			if v := t.values[lang]; v != "" {
				return v
			}
		}
	}
	return fallback
}

// UnmarshalJSON accepts a string, an object of strings, or null. Other JSON
// kinds decode to absent instead of failing the enclosing document.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*t = LocalizedText{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = PlainText(s)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		values := make(map[LanguageCode]string, len(raw))
		for k, v := range raw {
			var s string
			if json.Unmarshal(v, &s) == nil {
				values[LanguageCode(k)] = s
			}
		}
		*t = LocalizedText{kind: textLocalized, values: values}
	default:
		*t = LocalizedText{}
	}
	return nil
}

// MarshalJSON writes the field back in the shape it was read
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case textPlain:
		return json.Marshal(t.plain)
	case textLocalized:
		return json.Marshal(t.values)
	default:
		return []byte("null"), nil
	}
}
