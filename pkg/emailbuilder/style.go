package emailbuilder

import "strings"

// Hard defaults used when neither the block nor the EmailStyle supplies a
// value. Every fallback chain in the package goes block override ->
// EmailStyle -> these constants, resolved once per compile.
const (
	defaultFontFamily  = "Helvetica, Arial, sans-serif"
	defaultTextColor   = "#333333"
	defaultLinkColor   = "#2563eb"
	defaultBackground  = "#ffffff"
	defaultCanvasColor = "#f1f3f5"
	defaultBorderColor = "#e5e7eb"

	contentWidth = 600
	cardRadius   = "8px"
)

// effectiveStyle is the fully resolved document style.
type effectiveStyle struct {
	Background  string
	CanvasColor string
	TextColor   string
	FontFamily  string
	LinkColor   string
	Inset       bool
	Rounded     bool
}

func resolveStyle(s EmailStyle) effectiveStyle {
	return effectiveStyle{
		Background:  firstNonEmpty(s.BackgroundColor, defaultBackground),
		CanvasColor: firstNonEmpty(s.InsetBgColor, defaultCanvasColor),
		TextColor:   firstNonEmpty(s.TextColor, defaultTextColor),
		FontFamily:  firstNonEmpty(s.FontFamily, defaultFontFamily),
		LinkColor:   firstNonEmpty(s.LinkColor, defaultLinkColor),
		Inset:       s.IsInset,
		Rounded:     s.Rounded,
	}
}

// radius returns the corner radius driven by the document rounding flag.
// Rounding is a document-level decision, not per block.
func (e effectiveStyle) radius() string {
	if e.Rounded {
		return "6px"
	}
	return "0"
}

// blockPadding is the container-row padding around each block. Inset mode is
// tighter because the card border already provides breathing room.
func (e effectiveStyle) blockPadding() string {
	if e.Inset {
		return "8px 40px"
	}
	return "12px 24px"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// renderer holds the resolved per-compile context shared by every block
// renderer. It is built once per Render call and never retained.
type renderer struct {
	style  effectiveStyle
	assets AssetResolver
	person Personalization
}

// escapeHTML escapes text content for safe HTML output.
func escapeHTML(content string) string {
	content = strings.ReplaceAll(content, "&", "&amp;")
	content = strings.ReplaceAll(content, "<", "&lt;")
	content = strings.ReplaceAll(content, ">", "&gt;")
	return content
}

// escapeAttr escapes attribute values. Ampersands are preserved in values
// that look like URLs so query parameters survive.
func escapeAttr(value string) string {
	looksLikeURL := strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") ||
		strings.HasPrefix(value, "//") || strings.HasPrefix(value, "mailto:")
	if !looksLikeURL {
		value = strings.ReplaceAll(value, "&", "&amp;")
	}
	value = strings.ReplaceAll(value, "\"", "&quot;")
	value = strings.ReplaceAll(value, "'", "&#39;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	return value
}
