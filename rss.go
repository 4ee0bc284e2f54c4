package folio

import (
	"encoding/xml"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language"`
	LastBuild   string    `xml:"lastBuildDate,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	GUID        string `xml:"guid"`
}

// renderRSS publishes the portfolio projects, in document order.
func (a *App) renderRSS(c echo.Context, doc *content.Document, lang content.Lang) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(doc.Projects))
	for i, p := range doc.Projects {
		link := p["link"].Value()
		guid := link
		if link == "" {
			link = BuildURL(base) + "#portfolio"
			guid = link + "-" + itoa(i)
		}
		items = append(items, rssItem{
			Title:       content.Resolve(p["title"], lang),
			Link:        link,
			Description: content.Resolve(p["desc"], lang),
			GUID:        guid,
		})
	}
	desc := a.Config.Description
	if desc == "" {
		desc = content.Resolve(doc.Profile.Summary, lang)
	}
	ch := rssChannel{
		Title:       a.Config.Name,
		Link:        base,
		Description: desc,
		Language:    string(lang),
		Items:       items,
	}
	if t := a.Cache.Fetched(); !t.IsZero() {
		ch.LastBuild = t.UTC().Format(time.RFC1123Z)
	}
	return writeXML(c, "application/rss+xml; charset=utf-8", rssXML{Version: "2.0", Channel: ch})
}
