package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `{
  "profile": {
    "name": {"ar": "أسامة", "en": "Osama"},
    "title": {"ar": "مطور", "en": "Developer"},
    "summary": "نص",
    "email": "me@example.com",
    "theme": "blue"
  },
  "experience": [
    {"role": {"ar": "مهندس", "en": "Engineer"}, "company": {"ar": "شركة", "en": "Acme"}, "period": "2020 - 2023", "description": {"ar": "وصف", "en": "desc"}, "order": 3}
  ],
  "skills": [{"ar": "برمجة", "en": "Coding"}, "Go"],
  "certificates": [],
  "projects": [{"title": {"ar": "مشروع", "en": "Project"}, "desc": {"ar": "", "en": "Thing"}, "link": "https://example.com"}],
  "meta": {"version": 2}
}`

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   Text
		lang Lang
		want string
	}{
		{"scalar", Scalar("Go"), English, "Go"},
		{"zero value", Text{}, English, ""},
		{"active side", Bilingual("مرحبا", "Hello"), English, "Hello"},
		{"arabic side", Bilingual("مرحبا", "Hello"), Arabic, "مرحبا"},
		{"falls back to arabic", Bilingual("مرحبا", ""), English, "مرحبا"},
		{"both empty", Bilingual("", ""), English, ""},
		{"arabic missing stays empty", Bilingual("", "Hello"), Arabic, ""},
	}
	for _, tt := range tests {
		if got := Resolve(tt.in, tt.lang); got != tt.want {
			t.Errorf("%s: Resolve = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolveMissingEnglishKey(t *testing.T) {
	var v Text
	if err := v.UnmarshalJSON([]byte(`{"ar":"مرحبا"}`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !v.IsBilingual() {
		t.Fatal("expected bilingual value")
	}
	if got := Resolve(v, English); got != "مرحبا" {
		t.Errorf("Resolve = %q, want arabic fallback", got)
	}
}

func TestWithSideKeepsOtherLanguage(t *testing.T) {
	v := Bilingual("قديم", "Old").WithSide(English, "New")
	if v.Side(Arabic) != "قديم" {
		t.Errorf("arabic side changed to %q", v.Side(Arabic))
	}
	if v.Side(English) != "New" {
		t.Errorf("english side = %q, want New", v.Side(English))
	}

	s := Scalar("old").WithSide(English, "new")
	if s.IsBilingual() || s.Value() != "new" {
		t.Errorf("scalar edit = %+v, want scalar new", s)
	}
}

func TestTextUnmarshalKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{`"plain"`, KindScalar},
		{`null`, KindScalar},
		{`{"ar":"a","en":"b"}`, KindBilingual},
		{`{"en":"b"}`, KindBilingual},
		{`{"url":"x"}`, KindRaw},
		{`42`, KindRaw},
		{`["a","b"]`, KindRaw},
	}
	for _, tt := range tests {
		var v Text
		if err := v.UnmarshalJSON([]byte(tt.in)); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if v.Kind() != tt.kind {
			t.Errorf("%s: kind = %d, want %d", tt.in, v.Kind(), tt.kind)
		}
	}
}

func TestParseAndEncodeRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Skills) != 2 || doc.Skills[1].Value() != "Go" {
		t.Fatalf("skills = %+v", doc.Skills)
	}
	if got := Resolve(doc.Profile.Name, English); got != "Osama" {
		t.Errorf("name = %q", got)
	}

	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s := string(out)
	for _, want := range []string{`"theme": "blue"`, `"order": 3`, `"meta": {`, `"أسامة"`, "\n  \"profile\": {"} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded document missing %q:\n%s", want, s)
		}
	}

	again, err := Parse(out)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	out2, err := Encode(again)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if string(out) != string(out2) {
		t.Errorf("encoding is not stable:\n%s\n---\n%s", out, out2)
	}
}

func TestBilingualKeepsOtherLanguages(t *testing.T) {
	var v Text
	if err := v.UnmarshalJSON([]byte(`{"ar":"مرحبا","en":"Hello","fr":"Bonjour"}`)); err != nil {
		t.Fatal(err)
	}
	v = v.WithSide(English, "Hi")
	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(out), `{"ar":"مرحبا","en":"Hi","fr":"Bonjour"}`; got != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
}

func TestEncodeDoesNotAddAbsentProfileKeys(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Encode(doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"image"`, `"linkedin"`, `"github"`} {
		if strings.Contains(string(out), key) {
			t.Errorf("encoded profile gained %s:\n%s", key, out)
		}
	}

	doc.Profile.Set(FieldGitHub, Scalar("https://github.com/me"))
	doc.Profile.Set(FieldEmail, Scalar(""))
	out, err = Encode(doc)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"github": "https://github.com/me"`, `"email": ""`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("encoded profile missing %s:\n%s", want, out)
		}
	}
}

func TestEncodeDoesNotEscapeHTML(t *testing.T) {
	doc := &Document{}
	doc.Profile.Summary = Scalar("R&D <team>")
	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(out), "R&D <team>") {
		t.Errorf("expected unescaped text, got %s", out)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	c := doc.Clone()
	c.Skills = append(c.Skills, Scalar("Rust"))
	c.Experience[0]["role"] = Scalar("changed")
	if len(doc.Skills) != 2 {
		t.Errorf("original skills changed: %d", len(doc.Skills))
	}
	if doc.Experience[0]["role"].IsBilingual() == false {
		t.Error("original record changed")
	}
}

func TestProfileLens(t *testing.T) {
	var p Profile
	for _, f := range ProfileFields {
		if !p.Set(f, Scalar(f.Key())) {
			t.Fatalf("Set(%v) rejected", f)
		}
	}
	for _, f := range ProfileFields {
		if got := p.Get(f).Value(); got != f.Key() {
			t.Errorf("Get(%s) = %q", f.Key(), got)
		}
		back, ok := ParseProfileField(f.Key())
		if !ok || back != f {
			t.Errorf("ParseProfileField(%q) = %v, %v", f.Key(), back, ok)
		}
	}
	if _, ok := ParseProfileField("nope"); ok {
		t.Error("unknown key resolved")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := NewLoader(path, 0).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Len(SectionProjects) != 1 {
		t.Errorf("projects = %d, want 1", doc.Len(SectionProjects))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, src := range []string{filepath.Join(dir, "missing.json"), bad} {
		_, err := NewLoader(src, 0).Load(context.Background())
		var le *LoadError
		if !errors.As(err, &le) {
			t.Errorf("%s: expected LoadError, got %v", src, err)
		}
	}
}

func TestLoadOverHTTPBustsCache(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Get("t"))
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/data.json", 0)
	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(seen) != 1 || seen[0] == "" {
		t.Fatalf("expected cache-busting parameter, got %v", seen)
	}

	_, err := NewLoader(srv.URL+"/missing.json", 0).Load(context.Background())
	var le *LoadError
	if !errors.As(err, &le) {
		t.Errorf("expected LoadError for 404, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	msgs, err := Check([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected sample to be valid, got %v", msgs)
	}

	msgs, err = Check([]byte(`{"profile": {}, "skills": []}`))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(msgs) == 0 {
		t.Error("expected violations for incomplete document")
	}
}

func TestSections(t *testing.T) {
	for _, s := range Sections {
		back, ok := ParseSection(s.String())
		if !ok || back != s {
			t.Errorf("ParseSection(%q) = %v, %v", s.String(), back, ok)
		}
		if _, ok := SchemaFor(s); !ok {
			t.Errorf("no schema for %s", s)
		}
	}
	sc, _ := SchemaFor(SectionSkills)
	if !sc.Inline || len(sc.Fields) != 1 {
		t.Errorf("skills schema = %+v", sc)
	}
	var d Document
	if d.Records(SectionCustom) != nil {
		t.Error("absent custom section should have no record list")
	}
	d.EnsureCustom()
	if d.Records(SectionCustom) == nil {
		t.Error("EnsureCustom did not create the section")
	}
}
