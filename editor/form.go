package editor

import (
	"net/url"
	"strings"

	"github.com/eringen/folio/content"
)

// Values holds submitted form inputs keyed by input name.
type Values map[string]string

// ValuesFrom copies the first value of every key in f.
func ValuesFrom(f url.Values) Values {
	v := make(Values, len(f))
	for k := range f {
		v[k] = f.Get(k)
	}
	return v
}

// InputName returns the form input name for a field side. Single-value
// fields pass an empty lang.
func InputName(key string, lang content.Lang) string {
	if lang == "" {
		return key
	}
	return key + "." + string(lang)
}

// Input is one rendered form control.
type Input struct {
	Name     string
	Label    content.Text
	Lang     content.Lang
	Dir      string
	Textarea bool
	Value    string
}

// Form is a create or edit form derived from a section schema.
type Form struct {
	Section content.Section
	Index   int
	Inputs  []Input
}

// IsEdit reports whether the form edits an existing element.
func (f Form) IsEdit() bool { return f.Index >= 0 }

// Form builds the form for s. An index of -1 builds an empty create form;
// otherwise the inputs are pre-filled from the element at index.
func (e *Engine) Form(s content.Section, index int) (Form, error) {
	sc, ok := content.SchemaFor(s)
	if !ok {
		return Form{}, ErrUnknownSection
	}
	var cur content.Record
	if index >= 0 {
		if err := e.checkIndex(s, index); err != nil {
			return Form{}, err
		}
		if sc.Inline {
			cur = content.Record{sc.Fields[0].Key: e.doc.Skills[index]}
		} else {
			cur = (*e.doc.Records(s))[index]
		}
	}
	return BuildForm(sc, index, cur), nil
}

// BuildForm lays out inputs for every schema field. Bilingual fields get an
// rtl Arabic input and an ltr English input; single-value fields get one
// ltr input.
func BuildForm(sc content.Schema, index int, cur content.Record) Form {
	f := Form{Section: sc.Section, Index: index}
	for _, fd := range sc.Fields {
		val := cur[fd.Key]
		if !fd.Bilingual {
			f.Inputs = append(f.Inputs, Input{
				Name:     InputName(fd.Key, ""),
				Label:    fd.Label,
				Dir:      "ltr",
				Textarea: fd.Textarea,
				Value:    val.Side(content.Arabic),
			})
			continue
		}
		for _, lang := range []content.Lang{content.Arabic, content.English} {
			f.Inputs = append(f.Inputs, Input{
				Name:     InputName(fd.Key, lang),
				Label:    fd.Label,
				Lang:     lang,
				Dir:      lang.Dir(),
				Textarea: fd.Textarea,
				Value:    val.Side(lang),
			})
		}
	}
	return f
}

func fieldValue(fd content.Field, values Values) content.Text {
	if fd.Bilingual {
		return content.Bilingual(
			strings.TrimSpace(values[InputName(fd.Key, content.Arabic)]),
			strings.TrimSpace(values[InputName(fd.Key, content.English)]),
		)
	}
	return content.Scalar(strings.TrimSpace(values[fd.Key]))
}

// buildRecord creates a full record with every schema field populated.
func buildRecord(sc content.Schema, values Values) (content.Record, error) {
	rec := make(content.Record, len(sc.Fields))
	blank := true
	for _, fd := range sc.Fields {
		v := fieldValue(fd, values)
		if fd.URL && !v.IsBlank() && !validURL(v.Value()) {
			return nil, &ValidationError{Section: sc.Section, Field: fd.Key, Msg: "must be an absolute http(s) URL"}
		}
		if !v.IsBlank() {
			blank = false
		}
		rec[fd.Key] = v
	}
	if blank {
		return nil, &ValidationError{Section: sc.Section, Msg: "at least one field is required"}
	}
	return rec, nil
}

func buildInline(sc content.Schema, values Values) (content.Text, error) {
	v := fieldValue(sc.Fields[0], values)
	if v.IsBlank() {
		return content.Text{}, &ValidationError{Section: sc.Section, Field: sc.Fields[0].Key, Msg: "is required"}
	}
	return v, nil
}
