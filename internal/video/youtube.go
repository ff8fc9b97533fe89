// Package video handles YouTube exam recordings: id extraction, the embed
// player message protocol, transcripts and playback tracking.
package video

import (
	"net/url"
	"regexp"

	"github.com/p-n-ai/pai-textbook/internal/content"
)

// PlayerOrigin is the only origin inbound player messages are accepted from.
const PlayerOrigin = "https://www.youtube.com"

var idPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractID returns the 11-character video id from a watch, short, or embed
// URL. It returns *content.NotFoundError when rawURL holds no id.
func ExtractID(rawURL string) (string, error) {
	m := idPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", &content.NotFoundError{What: "video id", Input: rawURL}
	}
	return m[1], nil
}

// EmbedURL returns the player URL with the JS API enabled for origin.
func EmbedURL(id, origin string) string {
	q := url.Values{}
	q.Set("enablejsapi", "1")
	if origin != "" {
		q.Set("origin", origin)
	}
	return PlayerOrigin + "/embed/" + id + "?" + q.Encode()
}

// PlainEmbedURL returns the player URL without the JS API.
func PlainEmbedURL(id string) string {
	return PlayerOrigin + "/embed/" + id
}
