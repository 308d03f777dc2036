package media

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrNoVideoID = errors.New("media: no video id in link")

// ExtractVideoID maps a YouTube link to the id the embed player cues.
// Supported shapes: /embed/<id>, youtu.be/<id>, /shorts/<id> and ?v=<id>.
func ExtractVideoID(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("media: parse %q: %w", link, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.Trim(u.EscapedPath(), "/")

	var id string
	switch {
	case strings.HasPrefix(path, "embed/"):
		id = strings.TrimPrefix(path, "embed/")
	case strings.HasPrefix(path, "shorts/"):
		id = strings.TrimPrefix(path, "shorts/")
	case host == "youtu.be":
		id = path
	default:
		id = u.Query().Get("v")
	}

	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrNoVideoID, link)
	}
	return id, nil
}
