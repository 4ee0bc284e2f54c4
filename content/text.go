package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Lang is a content language code.
type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

// ParseLang maps a cookie or query value to a Lang. Anything unknown is Arabic.
func ParseLang(s string) Lang {
	if Lang(s) == English {
		return English
	}
	return Arabic
}

// Other returns the language a toggle switches to.
func (l Lang) Other() Lang {
	if l == English {
		return Arabic
	}
	return English
}

// Dir returns the HTML text direction for the language.
func (l Lang) Dir() string {
	if l == English {
		return "ltr"
	}
	return "rtl"
}

// Kind tags the variant held by a Text.
type Kind uint8

const (
	KindScalar Kind = iota
	KindBilingual
	KindRaw
)

// Text is a content value: a language-neutral string, an {ar, en} pair,
// or a raw JSON value that is neither and is carried through untouched.
// The zero value is an empty scalar.
type Text struct {
	kind  Kind
	value string
	ar    string
	en    string
	raw   json.RawMessage

	// extra holds keys of a bilingual object other than ar and en.
	extra map[string]json.RawMessage
}

// Scalar returns a language-neutral Text.
func Scalar(s string) Text {
	return Text{kind: KindScalar, value: s}
}

// Bilingual returns an {ar, en} Text.
func Bilingual(ar, en string) Text {
	return Text{kind: KindBilingual, ar: ar, en: en}
}

func (t Text) Kind() Kind        { return t.kind }
func (t Text) IsBilingual() bool { return t.kind == KindBilingual }

// Value returns the scalar string. It is empty for other kinds.
func (t Text) Value() string {
	if t.kind == KindScalar {
		return t.value
	}
	return ""
}

// Side returns one language side of a bilingual value. For a scalar both
// sides read as the scalar, which is how forms pre-fill legacy plain strings.
func (t Text) Side(lang Lang) string {
	switch t.kind {
	case KindBilingual:
		if lang == English {
			return t.en
		}
		return t.ar
	case KindScalar:
		return t.value
	default:
		return ""
	}
}

// IsBlank reports whether the value carries no visible text.
func (t Text) IsBlank() bool {
	switch t.kind {
	case KindBilingual:
		return t.ar == "" && t.en == ""
	case KindScalar:
		return t.value == ""
	default:
		return len(t.raw) == 0
	}
}

// Resolve returns the string to display for lang. Bilingual values fall back
// to Arabic when the requested side is empty.
func Resolve(t Text, lang Lang) string {
	switch t.kind {
	case KindScalar:
		return t.value
	case KindBilingual:
		if s := t.Side(lang); s != "" {
			return s
		}
		return t.ar
	default:
		return ""
	}
}

// WithSide is the in-place edit rule: a bilingual value gets only the lang
// side overwritten; anything else is replaced wholesale by a scalar.
func (t Text) WithSide(lang Lang, s string) Text {
	if t.kind != KindBilingual {
		return Scalar(s)
	}
	if lang == English {
		t.en = s
	} else {
		t.ar = s
	}
	return t
}

func (t Text) String() string {
	return Resolve(t, Arabic)
}

// MarshalJSON writes scalars as strings and bilingual values as an object
// with both keys present, plus any other language keys it was read with.
func (t Text) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case KindBilingual:
		if len(t.extra) > 0 {
			out := make(map[string]any, len(t.extra)+2)
			for k, v := range t.extra {
				out[k] = v
			}
			out["ar"] = t.ar
			out["en"] = t.en
			return marshal(out)
		}
		return marshal(struct {
			AR string `json:"ar"`
			EN string `json:"en"`
		}{t.ar, t.en})
	case KindRaw:
		if len(t.raw) == 0 {
			return []byte("null"), nil
		}
		return t.raw, nil
	default:
		return marshal(t.value)
	}
}

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("content: empty text value")
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Scalar(s)
	case 'n':
		*t = Scalar("")
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(b, &m); err != nil {
			return err
		}
		ar, hasAR := m["ar"]
		en, hasEN := m["en"]
		if !hasAR && !hasEN {
			*t = Text{kind: KindRaw, raw: append(json.RawMessage(nil), b...)}
			return nil
		}
		*t = Bilingual(rawString(ar), rawString(en))
		delete(m, "ar")
		delete(m, "en")
		if len(m) > 0 {
			t.extra = m
		}
	default:
		*t = Text{kind: KindRaw, raw: append(json.RawMessage(nil), b...)}
	}
	return nil
}

// rawString reads a JSON string, treating null or absent as empty and any
// other literal as its source text.
func rawString(b json.RawMessage) string {
	if len(b) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	if string(b) == "null" {
		return ""
	}
	return string(b)
}
