package utils

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var mapHosts = []string{"www.google.com", "google.com", "maps.google.com"}

// MapEmbedURL pulls the iframe address out of a Google Maps embed snippet,
// or accepts the bare address. Anything that is not an https Google Maps
// embed yields "", so the stored markup itself is never rendered.
func MapEmbedURL(code string) string {
	src := strings.TrimSpace(code)
	if strings.HasPrefix(src, "<") {
		src = iframeSrc(src)
	}

	if src == "" {
		return ""
	}

	u, err := url.Parse(src)
	if err != nil || u.Scheme != "https" || u.User != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	for _, h := range mapHosts {
		if host == h && strings.HasPrefix(u.Path, "/maps/embed") {
			return u.String()
		}
	}
	return ""
}

func iframeSrc(code string) string {
	z := html.NewTokenizer(strings.NewReader(code))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return ""
		}

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		tok := z.Token()
		if tok.DataAtom != atom.Iframe {
			continue
		}

		for _, attr := range tok.Attr {
			if attr.Key == "src" {
				return strings.TrimSpace(attr.Val)
			}
		}
		return ""
	}
}
