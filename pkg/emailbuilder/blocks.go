package emailbuilder

import (
	"fmt"
	"strings"
)

// Per-block renderers. Each is a pure function of the block payload and the
// resolved document context; missing primary fields render nothing rather
// than erroring, so sibling blocks always survive a bad one.

func (r *renderer) renderText(b *TextBlock) string {
	font := firstNonEmpty(b.Font, r.style.FontFamily)
	color := firstNonEmpty(b.TextColor, r.style.TextColor)
	body := r.normalizeRichText(b.Content)

	return fmt.Sprintf(`<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0"><tr><td style="font-family: %s; color: %s;">%s</td></tr></table>`,
		escapeAttr(font), escapeAttr(color), body)
}

func (r *renderer) renderButton(b *ButtonBlock) string {
	// A buttonless block has no visual purpose.
	if strings.TrimSpace(b.Text) == "" {
		return ""
	}

	color := firstNonEmpty(b.Color, r.style.LinkColor)
	textColor := firstNonEmpty(b.TextColor, "#ffffff")

	styles := []string{
		"display: inline-block",
		"font-family: " + r.style.FontFamily,
		"font-size: 16px",
		"font-weight: 600",
		"text-decoration: none",
		"text-align: center",
		"padding: 12px 24px",
		"border-radius: " + r.style.radius(),
	}
	if b.Style == "outline" {
		styles = append(styles,
			"background-color: transparent",
			"border: 1px solid "+color,
			"color: "+color)
	} else {
		styles = append(styles,
			"background-color: "+color,
			"border: none",
			"color: "+textColor)
	}
	if b.Size == "full" {
		styles = append(styles, "width: 100%", "box-sizing: border-box")
	}
	styleAttr := strings.Join(styles, "; ")

	align := "left"
	if b.Centered {
		align = "center"
	}

	var inner string
	link := NormalizeURL(b.Link)
	if link == "" {
		// No destination: keep the visual style as a non-interactive label.
		inner = fmt.Sprintf(`<span style="%s">%s</span>`, styleAttr, escapeHTML(b.Text))
	} else {
		inner = fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" style="%s">%s</a>`,
			escapeAttr(link), styleAttr, escapeHTML(b.Text))
	}

	return fmt.Sprintf(`<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0"><tr><td align="%s">%s</td></tr></table>`,
		align, inner)
}

func (r *renderer) renderDivider(b *DividerBlock) string {
	color := firstNonEmpty(b.Color, defaultBorderColor)
	margin := b.Margin
	if margin <= 0 {
		margin = 16
	}
	return fmt.Sprintf(`<div style="border-top: 1px solid %s; margin: %dpx 0; font-size: 0; line-height: 0;">&nbsp;</div>`,
		escapeAttr(color), margin)
}

func (r *renderer) renderImage(b *ImageBlock) string {
	if strings.TrimSpace(b.Image) == "" {
		return ""
	}

	size := b.Size
	if size <= 0 {
		size = 100
	}

	img := fmt.Sprintf(`<img src="%s" alt="%s" style="width: %d%%; max-width: 100%%; height: auto; display: inline-block; border-radius: %s;">`,
		escapeAttr(r.assets.URL(b.Image)), escapeAttr(b.AltText), size, r.style.radius())

	if link := NormalizeURL(b.Link); link != "" {
		img = fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, escapeAttr(link), img)
	}

	align := "left"
	if b.Centered {
		align = "center"
	}
	return fmt.Sprintf(`<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0"><tr><td align="%s">%s</td></tr></table>`,
		align, img)
}

func (r *renderer) renderFile(b *FileBlock) string {
	if strings.TrimSpace(b.File) == "" {
		return ""
	}

	bg := firstNonEmpty(b.BgColor, "#f3f4f6")
	textColor := firstNonEmpty(b.TextColor, r.style.TextColor)
	title := b.Title
	if strings.TrimSpace(title) == "" {
		title = "Attachment"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<a href="%s" target="_blank" rel="noopener noreferrer" style="text-decoration: none; display: block;">`,
		escapeAttr(r.assets.URL(b.File)))
	fmt.Fprintf(&sb, `<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0" style="background-color: %s; border-radius: %s;"><tr>`,
		escapeAttr(bg), r.style.radius())
	fmt.Fprintf(&sb, `<td style="padding: 14px 16px; font-family: %s; font-size: 15px; font-weight: 600; color: %s;">%s</td>`,
		escapeAttr(r.style.FontFamily), escapeAttr(textColor), escapeHTML(title))
	fmt.Fprintf(&sb, `<td align="right" style="padding: 14px 16px;"><span style="display: inline-block; padding: 6px 14px; border-radius: 999px; background-color: %s; color: %s; font-family: %s; font-size: 13px; font-weight: 600;">Download</span></td>`,
		escapeAttr(textColor), escapeAttr(bg), escapeAttr(r.style.FontFamily))
	sb.WriteString(`</tr></table></a>`)
	return sb.String()
}

// playIconScale sizes the play-button overlay relative to the thumbnail
// width so it stays visually centered at any size.
const playIconScale = 0.72

func (r *renderer) renderVideo(b *VideoBlock) string {
	videoID := ExtractYouTubeID(b.URL)
	if videoID == "" {
		// Email clients cannot play inline video; without a recognizable
		// YouTube URL there is nothing to link out to.
		return ""
	}

	size := b.Size
	if size <= 0 {
		size = 100
	}
	iconPx := int(float64(size) * playIconScale)
	offset := iconPx / 2

	align := "left"
	if b.Centered {
		align = "center"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0"><tr><td align="%s">`, align)
	fmt.Fprintf(&sb, `<a href="%s" target="_blank" rel="noopener noreferrer" style="display: inline-block; position: relative; width: %d%%;">`,
		escapeAttr(b.URL), size)
	fmt.Fprintf(&sb, `<img src="%s" alt="" style="width: 100%%; display: block; border-radius: %s;">`,
		escapeAttr(youtubeThumbnailURL(videoID)), r.style.radius())
	fmt.Fprintf(&sb, `<img src="%s" alt="Play" width="%d" height="%d" style="position: absolute; top: 50%%; left: 50%%; margin-left: -%dpx; margin-top: -%dpx;">`,
		escapeAttr(r.assets.IconURL("play.png", "")), iconPx, iconPx, offset, offset)
	sb.WriteString(`</a></td></tr></table>`)
	return sb.String()
}
