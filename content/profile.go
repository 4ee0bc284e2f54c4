package content

import "encoding/json"

// Profile holds the scalar and bilingual fields rendered in the page header.
type Profile struct {
	Name     Text
	Title    Text
	Summary  Text
	Image    Text
	Email    Text
	LinkedIn Text
	GitHub   Text

	extra map[string]json.RawMessage
	// present records which known keys the source carried.
	present map[string]bool
}

// ProfileField names one editable profile field. It replaces "profile.name"
// style path strings.
type ProfileField int

const (
	FieldName ProfileField = iota
	FieldTitle
	FieldSummary
	FieldImage
	FieldEmail
	FieldLinkedIn
	FieldGitHub
)

// ProfileFields lists every field in display order.
var ProfileFields = []ProfileField{
	FieldName, FieldTitle, FieldSummary, FieldImage, FieldEmail, FieldLinkedIn, FieldGitHub,
}

var profileKeys = map[ProfileField]string{
	FieldName:     "name",
	FieldTitle:    "title",
	FieldSummary:  "summary",
	FieldImage:    "image",
	FieldEmail:    "email",
	FieldLinkedIn: "linkedin",
	FieldGitHub:   "github",
}

// Key returns the JSON key of the field.
func (f ProfileField) Key() string {
	return profileKeys[f]
}

// ParseProfileField resolves a JSON key to a field.
func ParseProfileField(key string) (ProfileField, bool) {
	for f, k := range profileKeys {
		if k == key {
			return f, true
		}
	}
	return 0, false
}

func (p *Profile) ref(f ProfileField) *Text {
	switch f {
	case FieldName:
		return &p.Name
	case FieldTitle:
		return &p.Title
	case FieldSummary:
		return &p.Summary
	case FieldImage:
		return &p.Image
	case FieldEmail:
		return &p.Email
	case FieldLinkedIn:
		return &p.LinkedIn
	case FieldGitHub:
		return &p.GitHub
	}
	return nil
}

// Get reads a field. Unknown fields read as an empty scalar.
func (p *Profile) Get(f ProfileField) Text {
	if r := p.ref(f); r != nil {
		return *r
	}
	return Text{}
}

// Set writes a field and reports whether f was a known field.
func (p *Profile) Set(f ProfileField, v Text) bool {
	r := p.ref(f)
	if r == nil {
		return false
	}
	*r = v
	return true
}

func (p *Profile) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*p = Profile{present: make(map[string]bool, len(ProfileFields))}
	for _, f := range ProfileFields {
		if _, ok := fields[f.Key()]; ok {
			p.present[f.Key()] = true
		}
		if err := take(fields, f.Key(), p.ref(f)); err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		p.extra = fields
	}
	return nil
}

// MarshalJSON writes the known fields, leaving out blank ones the source
// never had so a save does not add empty keys upstream. name is always
// written.
func (p *Profile) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.extra)+len(ProfileFields))
	for k, v := range p.extra {
		out[k] = v
	}
	for _, f := range ProfileFields {
		v := p.Get(f)
		if f != FieldName && !p.present[f.Key()] && v.IsBlank() {
			continue
		}
		out[f.Key()] = v
	}
	return marshal(out)
}
