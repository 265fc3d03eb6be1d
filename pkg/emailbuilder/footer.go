package emailbuilder

import (
	"fmt"
	"strings"
)

// maxFooterSocialLinks caps the social icon row; anything past it is
// silently dropped.
const maxFooterSocialLinks = 5

// renderFooter composes the organization footer: logo, identity text,
// social icon row, separator, address, sending-reason disclosure, and the
// legal row. Missing optional fields omit their row; the legal row is
// always present because it carries the compliance links.
func (r *renderer) renderFooter(f *FooterData) string {
	if f == nil {
		return ""
	}

	// In inset mode the footer sits on the canvas, not the content card.
	bg := firstNonEmpty(f.BgColor, r.style.Background)
	if r.style.Inset {
		bg = r.style.CanvasColor
	}
	textColor := firstNonEmpty(f.TextColor, r.style.TextColor)
	secondary := firstNonEmpty(f.SecondaryTextColor, "#6b7280")

	var sb strings.Builder
	fmt.Fprintf(&sb, `<table role="presentation" width="%d" cellpadding="0" cellspacing="0" border="0" style="max-width: %dpx; width: 100%%; background-color: %s;">`,
		contentWidth, contentWidth, escapeAttr(bg))

	row := func(format string, args ...interface{}) {
		sb.WriteString(`<tr><td align="center" style="padding: 4px 24px;">`)
		fmt.Fprintf(&sb, format, args...)
		sb.WriteString(`</td></tr>`)
	}

	if f.Logo != "" {
		row(`<img src="%s" alt="%s" height="32" style="display: inline-block;">`,
			escapeAttr(r.assets.URL(f.Logo)), escapeAttr(f.Name))
	}
	if strings.TrimSpace(f.Name) != "" {
		row(`<div style="font-family: %s; color: %s; font-size: 15px; font-weight: 700;">%s</div>`,
			escapeAttr(r.style.FontFamily), escapeAttr(textColor), escapeHTML(f.Name))
	}
	if strings.TrimSpace(f.Subtitle) != "" {
		row(`<div style="font-family: %s; color: %s; font-size: 13px;">%s</div>`,
			escapeAttr(r.style.FontFamily), escapeAttr(secondary), escapeHTML(f.Subtitle))
	}
	if socials := r.renderFooterSocials(f); socials != "" {
		row(`%s`, socials)
	}

	row(`<div style="border-top: 1px solid %s; margin: 12px 0; font-size: 0; line-height: 0;">&nbsp;</div>`,
		defaultBorderColor)

	if strings.TrimSpace(f.Address) != "" {
		row(`<div style="font-family: %s; color: %s; font-size: 12px;">%s</div>`,
			escapeAttr(r.style.FontFamily), escapeAttr(secondary), escapeHTML(f.Address))
	}
	if strings.TrimSpace(f.Reason) != "" {
		row(`<div style="font-family: %s; color: %s; font-size: 12px;">%s</div>`,
			escapeAttr(r.style.FontFamily), escapeAttr(secondary), escapeHTML(f.Reason))
	}

	row(`%s`, r.renderLegalRow(f, secondary))

	sb.WriteString(`</table>`)
	return sb.String()
}

// renderFooterSocials renders the social icon row. Footer links with an
// unknown icon or an empty URL are omitted, unlike author icons.
func (r *renderer) renderFooterSocials(f *FooterData) string {
	links := f.Links
	if len(links) > maxFooterSocialLinks {
		links = links[:maxFooterSocialLinks]
	}

	var sb strings.Builder
	for _, link := range links {
		asset, ok := SocialIconAsset(link.Icon)
		if !ok {
			continue
		}
		url := NormalizeURL(link.URL)
		if url == "" {
			continue
		}
		sb.WriteString(r.renderSocialIcon(f, asset, link.Icon, url))
	}
	if sb.Len() == 0 {
		return ""
	}
	return fmt.Sprintf(`<div style="padding: 8px 0;">%s</div>`, sb.String())
}

// renderSocialIcon applies the configured icon treatment: a filled circular
// background, an outlined border, or the bare icon.
func (r *renderer) renderSocialIcon(f *FooterData, asset, name, url string) string {
	socialsColor := firstNonEmpty(f.SocialsColor, r.style.TextColor)
	iconColor := firstNonEmpty(f.SocialsIconColor, "#ffffff")

	var icon string
	switch f.SocialsStyle {
	case "outline":
		icon = fmt.Sprintf(`<span style="display: inline-block; width: 32px; height: 32px; line-height: 32px; border-radius: 50%%; background-color: transparent; border: 1px solid %s; text-align: center;"><img src="%s" alt="%s" width="16" height="16" style="vertical-align: middle;"></span>`,
			escapeAttr(socialsColor), escapeAttr(r.assets.IconURL(asset, socialsColor)), escapeAttr(name))
	case "icon-only":
		icon = fmt.Sprintf(`<img src="%s" alt="%s" width="20" height="20" style="vertical-align: middle;">`,
			escapeAttr(r.assets.IconURL(asset, socialsColor)), escapeAttr(name))
	default: // filled
		icon = fmt.Sprintf(`<span style="display: inline-block; width: 32px; height: 32px; line-height: 32px; border-radius: 50%%; background-color: %s; text-align: center;"><img src="%s" alt="%s" width="16" height="16" style="vertical-align: middle;"></span>`,
			escapeAttr(socialsColor), escapeAttr(r.assets.IconURL(asset, iconColor)), escapeAttr(name))
	}

	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" style="display: inline-block; margin: 0 4px; text-decoration: none;">%s</a>`,
		escapeAttr(url), icon)
}

// renderLegalRow emits copyright text plus the manage-preferences and
// unsubscribe links, pipe-separated. Always rendered: these are the
// required compliance links.
func (r *renderer) renderLegalRow(f *FooterData, secondary string) string {
	linkStyle := fmt.Sprintf("color: %s; text-decoration: underline;", escapeAttr(secondary))

	parts := make([]string, 0, 3)
	copyright := firstNonEmpty(f.CopyrightName, f.Name)
	if copyright != "" {
		parts = append(parts, fmt.Sprintf(`&copy; %s`, escapeHTML(copyright)))
	}
	parts = append(parts,
		fmt.Sprintf(`<a href="%s" style="%s">Manage preferences</a>`,
			escapeAttr(hrefOrPlaceholder(r.person.PreferencesURL)), linkStyle),
		fmt.Sprintf(`<a href="%s" style="%s">Unsubscribe</a>`,
			escapeAttr(hrefOrPlaceholder(r.person.UnsubscribeURL)), linkStyle))

	return fmt.Sprintf(`<div style="font-family: %s; color: %s; font-size: 12px;">%s</div>`,
		escapeAttr(r.style.FontFamily), escapeAttr(secondary), strings.Join(parts, " | "))
}
