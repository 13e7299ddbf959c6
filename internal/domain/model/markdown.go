package model

import (
	"github.com/russross/blackfriday/v2"
)

const markdownFlags = blackfriday.SkipHTML |
	blackfriday.Safelink |
	blackfriday.NofollowLinks |
	blackfriday.NoreferrerLinks |
	blackfriday.HrefTargetBlank

// RenderMarkdown converts an admin-authored description to HTML. Raw HTML in
// the source is dropped and only safe link schemes are emitted.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: markdownFlags})
	return string(blackfriday.Run([]byte(src), blackfriday.WithRenderer(r)))
}
