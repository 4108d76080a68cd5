package manifest

import (
	"net/url"
	"strings"
)

// Source classifies a job identifier for backend selection.
type Source struct {
	Host              string
	StreamingPlatform bool // segmented delivery; the accelerator adds no benefit
	Playlist          bool
}

var streamingHosts = []string{
	"youtube.com",
	"youtu.be",
}

// ClassifySource inspects the identifier's host and path. Unparsable
// identifiers classify as plain direct sources; yt-dlp gets to reject
// them properly at fetch time.
func ClassifySource(raw string) Source {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return Source{}
	}

	host := strings.ToLower(parsed.Hostname())
	src := Source{Host: host}
	for _, known := range streamingHosts {
		if host == known || strings.HasSuffix(host, "."+known) {
			src.StreamingPlatform = true
			break
		}
	}
	if parsed.Query().Has("list") || strings.Contains(parsed.Path, "/playlist") {
		src.Playlist = true
	}
	return src
}
