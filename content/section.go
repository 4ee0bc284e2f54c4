package content

import "fmt"

// Section identifies one list-typed part of the document.
type Section int

const (
	SectionExperience Section = iota
	SectionSkills
	SectionCertificates
	SectionProjects
	SectionCustom
)

// Sections lists every section in page order.
var Sections = []Section{
	SectionExperience, SectionSkills, SectionCertificates, SectionProjects, SectionCustom,
}

var sectionNames = [...]string{
	SectionExperience:   "experience",
	SectionSkills:       "skills",
	SectionCertificates: "certificates",
	SectionProjects:     "projects",
	SectionCustom:       "custom",
}

func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// ParseSection resolves a URL or form name to a Section.
func ParseSection(name string) (Section, bool) {
	for i, n := range sectionNames {
		if n == name {
			return Section(i), true
		}
	}
	return 0, false
}

// Field describes one form field of a section schema.
type Field struct {
	Key       string
	Label     Text
	Bilingual bool
	Textarea  bool
	URL       bool
}

// Schema drives the generic form builder for one section. Inline schemas
// describe sections whose list elements are a bare Text rather than a Record;
// they have exactly one bilingual field.
type Schema struct {
	Section Section
	Fields  []Field
	Inline  bool
}

var schemas = map[Section]Schema{
	SectionSkills: {
		Section: SectionSkills,
		Inline:  true,
		Fields: []Field{
			{Key: "name", Label: Bilingual("اسم المهارة", "Skill name"), Bilingual: true},
		},
	},
	SectionExperience: {
		Section: SectionExperience,
		Fields: []Field{
			{Key: "role", Label: Bilingual("المسمى الوظيفي", "Role"), Bilingual: true},
			{Key: "company", Label: Bilingual("الشركة", "Company"), Bilingual: true},
			{Key: "period", Label: Bilingual("التاريخ/الفترة", "Period")},
			{Key: "description", Label: Bilingual("الوصف", "Description"), Bilingual: true, Textarea: true},
		},
	},
	SectionProjects: {
		Section: SectionProjects,
		Fields: []Field{
			{Key: "title", Label: Bilingual("عنوان المشروع", "Project title"), Bilingual: true},
			{Key: "desc", Label: Bilingual("وصف المشروع", "Project description"), Bilingual: true, Textarea: true},
			{Key: "link", Label: Bilingual("رابط المشروع", "Project link"), URL: true},
		},
	},
	SectionCertificates: {
		Section: SectionCertificates,
		Fields: []Field{
			{Key: "name", Label: Bilingual("اسم الشهادة", "Certificate"), Bilingual: true},
			{Key: "issuer", Label: Bilingual("الجهة المانحة", "Issuer")},
			{Key: "date", Label: Bilingual("التاريخ", "Date")},
		},
	},
	SectionCustom: {
		Section: SectionCustom,
		Fields: []Field{
			{Key: "title", Label: Bilingual("العنوان", "Title"), Bilingual: true},
			{Key: "desc", Label: Bilingual("الوصف", "Description"), Bilingual: true, Textarea: true},
		},
	},
}

// SchemaFor returns the schema of s.
func SchemaFor(s Section) (Schema, bool) {
	sc, ok := schemas[s]
	return sc, ok
}

// Len returns the number of elements in s.
func (d *Document) Len(s Section) int {
	if s == SectionSkills {
		return len(d.Skills)
	}
	if l := d.Records(s); l != nil {
		return len(*l)
	}
	return 0
}

// Records returns a pointer to the record list backing s, or nil for Skills
// and for an absent custom section.
func (d *Document) Records(s Section) *[]Record {
	switch s {
	case SectionExperience:
		return &d.Experience
	case SectionCertificates:
		return &d.Certificates
	case SectionProjects:
		return &d.Projects
	case SectionCustom:
		if d.Custom == nil {
			return nil
		}
		return &d.Custom.Items
	}
	return nil
}

// EnsureCustom creates the custom section if the document has none.
func (d *Document) EnsureCustom() *CustomSection {
	if d.Custom == nil {
		d.Custom = &CustomSection{Title: Bilingual("", "")}
	}
	return d.Custom
}
