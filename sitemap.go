package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	NS      string     `xml:"xmlns,attr"`
	Entries []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// renderSitemap lists the one-page site and, when export is on, the resume.
// lastmod is the time the live document was last loaded or saved.
func (a *App) renderSitemap(c echo.Context) error {
	var mod string
	if t := a.Cache.Fetched(); !t.IsZero() {
		mod = t.UTC().Format(time.DateOnly)
	}
	set := urlSet{
		NS:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		Entries: []urlEntry{{Loc: BuildURL(a.Config.URL), LastMod: mod, ChangeFreq: "monthly"}},
	}
	if a.resume != nil {
		set.Entries = append(set.Entries, urlEntry{Loc: BuildURL(a.Config.URL, "resume.pdf"), LastMod: mod})
	}
	return writeXML(c, "application/xml; charset=utf-8", set)
}

func writeXML(c echo.Context, contentType string, v any) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, contentType)
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(res).Encode(v)
}
