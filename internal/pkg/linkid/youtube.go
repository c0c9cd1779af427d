package linkid

import (
	"net/url"
	"regexp"
	"strings"
)

// YouTube IDs are nominally 11 characters; 10-20 is tolerated for
// forward compatibility with longer future IDs.
var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10,20}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
	"www.youtu.be":    true,
}

// ExtractYouTubeVideoID extracts the bare video ID from a YouTube link.
// Recognized forms:
//
//	youtube.com/watch?v=<ID>
//	youtu.be/<ID>
//	youtube.com/embed/<ID>
//	youtube.com/live/<ID>
//	youtube.com/shorts/<ID>
//
// Trailing path segments, query parameters, and fragments are stripped.
// Non-YouTube hosts are rejected even when they carry a v= parameter.
// A string that already is a bare ID is returned unchanged.
func ExtractYouTubeVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNotYouTubeLink
	}

	if !strings.ContainsAny(raw, ":/?#") && youtubeIDPattern.MatchString(raw) {
		return raw, nil
	}

	// Scheme-less links like "youtube.com/watch?v=x" still parse, but as
	// a path; force a scheme so the host lands in the right place.
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrNotYouTubeLink
	}

	host := strings.ToLower(u.Hostname())
	if !youtubeHosts[host] {
		return "", ErrNotYouTubeLink
	}

	var candidate string
	switch {
	case host == "youtu.be" || host == "www.youtu.be":
		candidate = firstPathSegment(u.Path)
	case u.Path == "/watch":
		candidate = u.Query().Get("v")
	default:
		for _, prefix := range []string{"/embed/", "/live/", "/shorts/"} {
			if strings.HasPrefix(u.Path, prefix) {
				candidate = firstPathSegment(strings.TrimPrefix(u.Path, prefix))
				break
			}
		}
	}

	if candidate == "" || !youtubeIDPattern.MatchString(candidate) {
		return "", ErrNotYouTubeLink
	}
	return candidate, nil
}

// firstPathSegment returns the path up to the next slash, with any
// leading slash removed.
func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

// YouTubeWatchURL reconstructs the canonical watch URL for a stored ID.
func YouTubeWatchURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://youtube.com/watch?v=" + url.QueryEscape(videoID)
}
