package emailbuilder

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// NormalizeURL canonicalizes a user-entered URL into a client-usable href.
// Empty input stays empty, mailto: and http(s) pass through unchanged, a
// bare e-mail address becomes a mailto: link, and anything else is prefixed
// with https://. Applying it twice is equivalent to applying it once.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "mailto:") {
		return raw
	}
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	if govalidator.IsEmail(raw) {
		return "mailto:" + raw
	}
	return "https://" + raw
}

// hrefOrPlaceholder normalizes a URL, falling back to "#" so an anchor is
// still well formed when the author left the field blank.
func hrefOrPlaceholder(raw string) string {
	if u := NormalizeURL(raw); u != "" {
		return u
	}
	return "#"
}

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube(?:-nocookie)?\.com/watch\?(?:[^#\s]*&)?v=([A-Za-z0-9_-]{6,})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{6,})`),
	regexp.MustCompile(`youtube(?:-nocookie)?\.com/embed/([A-Za-z0-9_-]{6,})`),
	regexp.MustCompile(`youtube(?:-nocookie)?\.com/shorts/([A-Za-z0-9_-]{6,})`),
}

// ExtractYouTubeID pulls a video ID out of the four recognized YouTube URL
// shapes (watch?v=, youtu.be/, embed/, shorts/). Returns "" when none match.
func ExtractYouTubeID(raw string) string {
	for _, re := range youtubePatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	}
	return ""
}

func youtubeThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}

// AssetResolver turns relative storage paths into absolute public URLs.
// The base URL is caller-supplied configuration; already-absolute
// references pass through untouched.
type AssetResolver struct {
	BaseURL string
}

func (a AssetResolver) URL(ref string) string {
	if ref == "" {
		return ""
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:") {
		return ref
	}
	if a.BaseURL == "" {
		return ref
	}
	return strings.TrimRight(a.BaseURL, "/") + "/" + strings.TrimLeft(ref, "/")
}

// IconURL resolves a bundled UI icon, optionally requesting a tint color
// from the asset endpoint.
func (a AssetResolver) IconURL(name, color string) string {
	u := a.URL("icons/" + name)
	if color != "" {
		u += "?color=" + strings.TrimPrefix(color, "#")
	}
	return u
}

// TrackingSettings controls the post-render link rewriting pass: UTM
// tagging plus, when enabled, a redirect through the tracking endpoint and
// an open-tracking pixel. SentAt pins the timestamp embedded in tracking
// URLs; zero means time.Now at rewrite time.
type TrackingSettings struct {
	EnableTracking bool   `json:"enable_tracking"`
	Endpoint       string `json:"endpoint,omitempty"`
	UTMSource      string `json:"utm_source,omitempty"`
	UTMMedium      string `json:"utm_medium,omitempty"`
	UTMCampaign    string `json:"utm_campaign,omitempty"`
	UTMContent     string `json:"utm_content,omitempty"`
	UTMTerm        string `json:"utm_term,omitempty"`
	WorkspaceID    string `json:"workspace_id,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
	SentAt         int64  `json:"sent_at,omitempty"`
}

func (t TrackingSettings) hasUTM() bool {
	return t.UTMSource != "" || t.UTMMedium != "" || t.UTMCampaign != "" ||
		t.UTMContent != "" || t.UTMTerm != ""
}

func (t TrackingSettings) sentAt() int64 {
	if t.SentAt != 0 {
		return t.SentAt
	}
	return time.Now().Unix()
}

// isNonTrackableURL reports whether a URL must never be rewritten: special
// protocols break when wrapped in a redirect, anchors and placeholders are
// not destinations.
func isNonTrackableURL(raw string) bool {
	if raw == "" || raw == "#" {
		return true
	}
	if strings.Contains(raw, "{{") || strings.Contains(raw, "{%") {
		return true
	}
	if strings.HasPrefix(raw, "#") {
		return true
	}
	lower := strings.ToLower(raw)
	for _, protocol := range []string{"mailto:", "tel:", "sms:", "javascript:", "data:", "blob:", "file:"} {
		if strings.HasPrefix(lower, protocol) {
			return true
		}
	}
	return false
}

// taggedURL appends the configured UTM parameters to a URL, leaving URLs
// that already carry UTM parameters alone.
func (t TrackingSettings) taggedURL(sourceURL string) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return sourceURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return sourceURL
	}

	query := parsed.Query()
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			return sourceURL
		}
	}
	if t.UTMSource != "" {
		query.Add("utm_source", t.UTMSource)
	}
	if t.UTMMedium != "" {
		query.Add("utm_medium", t.UTMMedium)
	}
	if t.UTMCampaign != "" {
		query.Add("utm_campaign", t.UTMCampaign)
	}
	if t.UTMContent != "" {
		query.Add("utm_content", t.UTMContent)
	}
	if t.UTMTerm != "" {
		query.Add("utm_term", t.UTMTerm)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// redirectURL wraps a destination in the click-tracking endpoint.
func (t TrackingSettings) redirectURL(destination string) string {
	return fmt.Sprintf("%s/visit?mid=%s&wid=%s&ts=%d&url=%s",
		strings.TrimRight(t.Endpoint, "/"),
		url.QueryEscape(t.MessageID),
		url.QueryEscape(t.WorkspaceID),
		t.sentAt(),
		url.QueryEscape(destination))
}

// openTrackingPixel builds the 1x1 open-tracking image tag.
func (t TrackingSettings) openTrackingPixel() string {
	pixelURL := fmt.Sprintf("%s/opens?mid=%s&wid=%s&ts=%d",
		strings.TrimRight(t.Endpoint, "/"),
		url.QueryEscape(t.MessageID),
		url.QueryEscape(t.WorkspaceID),
		t.sentAt())
	return fmt.Sprintf(`<img src="%s" alt="" width="1" height="1">`, pixelURL)
}

var (
	hrefRegex      = regexp.MustCompile(`(<a[^>]*\s+href=["'])([^"']+)(["'][^>]*>)`)
	bodyCloseRegex = regexp.MustCompile(`(?i)(</body>)`)
)

// TrackLinks rewrites anchor hrefs in rendered HTML with UTM parameters
// and, when tracking is enabled, wraps them in the redirect endpoint and
// injects the open-tracking pixel before </body>.
func TrackLinks(html string, t TrackingSettings) string {
	if !t.EnableTracking && !t.hasUTM() {
		return html
	}

	html = hrefRegex.ReplaceAllStringFunc(html, func(match string) string {
		parts := hrefRegex.FindStringSubmatch(match)
		if len(parts) != 4 {
			return match
		}
		original := parts[1]
		destination := parts[2]
		closing := parts[3]

		if isNonTrackableURL(destination) {
			return match
		}

		rewritten := t.taggedURL(destination)
		if t.EnableTracking && t.Endpoint != "" {
			rewritten = t.redirectURL(rewritten)
		}
		return original + rewritten + closing
	})

	if t.EnableTracking && t.Endpoint != "" {
		pixel := t.openTrackingPixel()
		if bodyCloseRegex.MatchString(html) {
			html = bodyCloseRegex.ReplaceAllString(html, pixel+"$1")
		} else {
			html += pixel
		}
	}
	return html
}
