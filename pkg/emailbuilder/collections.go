package emailbuilder

import (
	"fmt"
	"strings"
	"unicode"
)

// cardRowGutter splits the 16px gutter between the two cards of a row so
// the spacing is consistent regardless of row index.
const cardRowGutter = 8

// renderHeader emits the optional title/subtitle pair shared by the cards
// and list blocks.
func (r *renderer) renderHeader(title, subtitle, textColor string) string {
	var sb strings.Builder
	if strings.TrimSpace(title) != "" {
		fmt.Fprintf(&sb, `<div style="font-family: %s; color: %s; font-size: 22px; font-weight: 700; margin: 0 0 4px;">%s</div>`,
			escapeAttr(r.style.FontFamily), escapeAttr(textColor), escapeHTML(title))
	}
	if strings.TrimSpace(subtitle) != "" {
		fmt.Fprintf(&sb, `<div style="font-family: %s; color: %s; font-size: 15px; margin: 0 0 12px;">%s</div>`,
			escapeAttr(r.style.FontFamily), escapeAttr(textColor), escapeHTML(subtitle))
	}
	return sb.String()
}

func (r *renderer) renderCards(b *CardsBlock) string {
	if len(b.Cards) == 0 {
		return ""
	}

	textColor := firstNonEmpty(b.TextColor, r.style.TextColor)

	var sb strings.Builder
	sb.WriteString(r.renderHeader(b.Title, b.Subtitle, textColor))
	sb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0">`)

	// Cards flow two per row; the last odd row keeps a filler cell so the
	// grid columns stay aligned.
	for i := 0; i < len(b.Cards); i += 2 {
		topPad := "16px"
		if i == 0 {
			topPad = "0"
		}
		fmt.Fprintf(&sb, `<tr><td width="50%%" valign="top" style="padding-top: %s; padding-right: %dpx;">%s</td>`,
			topPad, cardRowGutter, r.renderCardItem(b.Cards[i], b, textColor))
		if i+1 < len(b.Cards) {
			fmt.Fprintf(&sb, `<td width="50%%" valign="top" style="padding-top: %s; padding-left: %dpx;">%s</td>`,
				topPad, cardRowGutter, r.renderCardItem(b.Cards[i+1], b, textColor))
		} else {
			fmt.Fprintf(&sb, `<td width="50%%" style="padding-top: %s; padding-left: %dpx;"></td>`,
				topPad, cardRowGutter)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</table>`)
	return sb.String()
}

// renderCardItem renders one card. Every sub-element is driven by its own
// source field being non-empty; there are no placeholder texts here, that
// defaulting belongs to the editor.
func (r *renderer) renderCardItem(c CardItem, b *CardsBlock, textColor string) string {
	var sb strings.Builder
	sb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0">`)

	if c.Image != "" {
		fmt.Fprintf(&sb, `<tr><td style="padding-bottom: 8px;"><img src="%s" alt="" style="width: 100%%; height: 180px; object-fit: cover; display: block; border-radius: %s;"></td></tr>`,
			escapeAttr(r.assets.URL(c.Image)), r.style.radius())
	}
	if strings.TrimSpace(c.Label) != "" {
		labelColor := firstNonEmpty(b.LabelColor, r.style.LinkColor)
		fmt.Fprintf(&sb, `<tr><td style="font-family: %s; color: %s; font-size: 12px; font-weight: 700; text-transform: uppercase; letter-spacing: 0.05em; padding-bottom: 4px;">%s</td></tr>`,
			escapeAttr(r.style.FontFamily), escapeAttr(labelColor), escapeHTML(c.Label))
	}
	if strings.TrimSpace(c.Title) != "" {
		fmt.Fprintf(&sb, `<tr><td style="font-family: %s; color: %s; font-size: 17px; font-weight: 700; padding-bottom: 4px;">%s</td></tr>`,
			escapeAttr(r.style.FontFamily), escapeAttr(textColor), escapeHTML(c.Title))
	}
	if strings.TrimSpace(c.Description) != "" {
		fmt.Fprintf(&sb, `<tr><td style="font-family: %s; color: %s; font-size: 14px; line-height: 1.5; padding-bottom: 8px;">%s</td></tr>`,
			escapeAttr(r.style.FontFamily), escapeAttr(textColor), escapeHTML(c.Description))
	}
	if strings.TrimSpace(c.ButtonText) != "" {
		buttonColor := firstNonEmpty(b.ButtonColor, r.style.LinkColor)
		buttonTextColor := firstNonEmpty(b.ButtonTextColor, "#ffffff")
		fmt.Fprintf(&sb, `<tr><td><a href="%s" target="_blank" rel="noopener noreferrer" style="display: inline-block; background-color: %s; color: %s; font-family: %s; font-size: 14px; font-weight: 600; text-decoration: none; padding: 8px 16px; border-radius: %s;">%s</a></td></tr>`,
			escapeAttr(hrefOrPlaceholder(c.ButtonLink)), escapeAttr(buttonColor), escapeAttr(buttonTextColor),
			escapeAttr(r.style.FontFamily), r.style.radius(), escapeHTML(c.ButtonText))
	}

	sb.WriteString(`</table>`)
	return sb.String()
}

func (r *renderer) renderList(b *ListBlock) string {
	if len(b.Items) == 0 {
		return ""
	}

	textColor := firstNonEmpty(b.TextColor, r.style.TextColor)
	bulletColor := firstNonEmpty(b.BulletColor, r.style.LinkColor)

	var sb strings.Builder
	sb.WriteString(r.renderHeader(b.Title, b.Subtitle, textColor))
	sb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0">`)

	for i, item := range b.Items {
		sb.WriteString(`<tr>`)
		if b.BulletType == "number" {
			// Filled numeric badge: colored circle, white index.
			fmt.Fprintf(&sb, `<td valign="top" style="padding-bottom: 16px;"><div style="width: 24px; height: 24px; border-radius: 50%%; background-color: %s; color: #ffffff; font-family: %s; font-size: 13px; font-weight: 700; line-height: 24px; text-align: center;">%d</div></td>`,
				escapeAttr(bulletColor), escapeAttr(r.style.FontFamily), i+1)
		} else {
			// Bare glyph needs less visual weight than a filled badge.
			fmt.Fprintf(&sb, `<td valign="top" style="width: 16px; padding-bottom: 16px; font-family: %s; font-size: 18px; line-height: 1.2; color: %s;">&bull;</td>`,
				escapeAttr(r.style.FontFamily), escapeAttr(textColor))
		}

		fmt.Fprintf(&sb, `<td valign="top" style="padding-left: 12px; padding-bottom: 16px;">`)
		if strings.TrimSpace(item.Title) != "" {
			fmt.Fprintf(&sb, `<div style="font-family: %s; color: %s; font-size: 16px; font-weight: 700; margin: 0 0 4px;">%s</div>`,
				escapeAttr(r.style.FontFamily), escapeAttr(textColor), escapeHTML(item.Title))
		}
		// Author-intended line breaks survive as independent blocks; HTML
		// whitespace collapsing would otherwise destroy them.
		for _, para := range strings.Split(item.Description, "\n") {
			if strings.TrimSpace(para) == "" {
				continue
			}
			fmt.Fprintf(&sb, `<div style="font-family: %s; color: %s; font-size: 14px; line-height: 1.5; margin: 0 0 8px;">%s</div>`,
				escapeAttr(r.style.FontFamily), escapeAttr(textColor), escapeHTML(para))
		}
		sb.WriteString(`</td></tr>`)
	}
	sb.WriteString(`</table>`)
	return sb.String()
}

const avatarSize = 48

func (r *renderer) renderAuthor(b *AuthorBlock) string {
	if strings.TrimSpace(b.Name) == "" && strings.TrimSpace(b.Avatar) == "" && len(b.Links) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0"><tr>`)

	fmt.Fprintf(&sb, `<td valign="middle" style="width: %dpx;">%s</td>`, avatarSize, r.renderAvatar(b))

	fmt.Fprintf(&sb, `<td valign="middle" style="padding-left: 12px;">`)
	if strings.TrimSpace(b.Name) != "" {
		fmt.Fprintf(&sb, `<div style="font-family: %s; color: %s; font-size: 15px; font-weight: 700;">%s</div>`,
			escapeAttr(r.style.FontFamily), escapeAttr(r.style.TextColor), escapeHTML(b.Name))
	}
	if strings.TrimSpace(b.Subtitle) != "" {
		fmt.Fprintf(&sb, `<div style="font-family: %s; color: %s; font-size: 13px;">%s</div>`,
			escapeAttr(r.style.FontFamily), escapeAttr(r.style.TextColor), escapeHTML(b.Subtitle))
	}
	sb.WriteString(`</td>`)

	if icons := r.renderAuthorLinks(b.Links); icons != "" {
		fmt.Fprintf(&sb, `<td valign="middle" align="right">%s</td>`, icons)
	}

	sb.WriteString(`</tr></table>`)
	return sb.String()
}

func (r *renderer) renderAvatar(b *AuthorBlock) string {
	if b.Avatar != "" {
		return fmt.Sprintf(`<img src="%s" alt="%s" width="%d" height="%d" style="border-radius: 50%%; display: block;">`,
			escapeAttr(r.assets.URL(b.Avatar)), escapeAttr(b.Name), avatarSize, avatarSize)
	}
	initial := firstLetter(b.Name)
	if initial == "" {
		return ""
	}
	return fmt.Sprintf(`<div style="width: %dpx; height: %dpx; border-radius: 50%%; background-color: %s; color: %s; font-family: %s; font-size: 20px; font-weight: 700; line-height: %dpx; text-align: center;">%s</div>`,
		avatarSize, avatarSize, defaultBorderColor, escapeAttr(r.style.TextColor),
		escapeAttr(r.style.FontFamily), avatarSize, escapeHTML(initial))
}

// renderAuthorLinks renders author social icons. Unlike footer links, an
// icon with an empty URL still renders, non-interactive: author icons are
// brand signals even without a destination.
func (r *renderer) renderAuthorLinks(links []SocialLink) string {
	var sb strings.Builder
	for _, link := range links {
		asset, ok := SocialIconAsset(link.Icon)
		if !ok {
			continue
		}
		icon := fmt.Sprintf(`<img src="%s" alt="%s" width="20" height="20" style="display: inline-block; vertical-align: middle;">`,
			escapeAttr(r.assets.IconURL(asset, "")), escapeAttr(link.Icon))
		if url := NormalizeURL(link.URL); url != "" {
			fmt.Fprintf(&sb, `<a href="%s" target="_blank" rel="noopener noreferrer" style="display: inline-block; margin-left: 8px;">%s</a>`,
				escapeAttr(url), icon)
		} else {
			fmt.Fprintf(&sb, `<span style="display: inline-block; margin-left: 8px;">%s</span>`, icon)
		}
	}
	return sb.String()
}

func firstLetter(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return ""
}
