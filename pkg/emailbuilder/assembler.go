package emailbuilder

import (
	"fmt"
	"strings"
)

// Compiler compiles documents against a configured asset base. It holds no
// per-compile state: every Render call is a pure function of its inputs and
// the Compiler is safe for concurrent use.
type Compiler struct {
	Assets AssetResolver
}

// NewCompiler builds a Compiler resolving relative asset references against
// the given public storage base URL.
func NewCompiler(assets AssetResolver) *Compiler {
	return &Compiler{Assets: assets}
}

// Render compiles a document into a complete HTML email: a single ordered
// pass over the sections and blocks, each block dispatched to its renderer
// and wrapped in a container row, then the footer appended and the result
// wrapped in the inset or full-bleed layout.
func (c *Compiler) Render(doc Document, style EmailStyle, footer *FooterData, person *Personalization) string {
	r := &renderer{
		style:  resolveStyle(style),
		assets: c.Assets,
	}
	if person != nil {
		r.person = *person
	}

	var blocks strings.Builder
	for _, section := range doc.Sections {
		for _, block := range section.Blocks {
			out := r.renderBlock(block)
			if strings.TrimSpace(out) == "" {
				continue
			}
			fmt.Fprintf(&blocks, `<tr><td style="padding: %s;">%s</td></tr>`, r.style.blockPadding(), out)
			blocks.WriteString("\n")
		}
	}

	body := r.renderLayout(blocks.String(), r.renderFooter(footer))
	return wrapHTMLDocument(body, r.style)
}

// renderBlock dispatches a block to its renderer. The switch is exhaustive
// over the variants; anything else renders as nothing.
func (r *renderer) renderBlock(block Block) string {
	switch b := block.(type) {
	case *TextBlock:
		return r.renderText(b)
	case *ButtonBlock:
		return r.renderButton(b)
	case *DividerBlock:
		return r.renderDivider(b)
	case *ImageBlock:
		return r.renderImage(b)
	case *FileBlock:
		return r.renderFile(b)
	case *VideoBlock:
		return r.renderVideo(b)
	case *CardsBlock:
		return r.renderCards(b)
	case *ListBlock:
		return r.renderList(b)
	case *AuthorBlock:
		return r.renderAuthor(b)
	case *UnknownBlock:
		return ""
	default:
		return ""
	}
}

// renderLayout wraps the block rows in one of the two top-level layouts.
// Full-bleed renders the content table directly on the document background;
// inset floats a narrower, optionally rounded card on the canvas color.
func (r *renderer) renderLayout(blockRows, footer string) string {
	var sb strings.Builder

	if r.style.Inset {
		fmt.Fprintf(&sb, `<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0" style="background-color: %s;"><tr><td align="center" style="padding: 32px 12px;">`,
			escapeAttr(r.style.CanvasColor))
		fmt.Fprintf(&sb, `<table role="presentation" width="%d" cellpadding="0" cellspacing="0" border="0" style="max-width: %dpx; width: 100%%; background-color: %s; border-radius: %s;">`,
			contentWidth, contentWidth, escapeAttr(r.style.Background), cardRadiusFor(r.style))
		sb.WriteString("\n")
		sb.WriteString(blockRows)
		sb.WriteString(`</table>`)
		if footer != "" {
			fmt.Fprintf(&sb, `<div style="height: 24px; line-height: 24px; font-size: 0;">&nbsp;</div>%s`, footer)
		}
		sb.WriteString(`</td></tr></table>`)
		return sb.String()
	}

	fmt.Fprintf(&sb, `<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0" style="background-color: %s;"><tr><td align="center" style="padding: 0 12px;">`,
		escapeAttr(r.style.Background))
	fmt.Fprintf(&sb, `<table role="presentation" width="%d" cellpadding="0" cellspacing="0" border="0" style="max-width: %dpx; width: 100%%;">`,
		contentWidth, contentWidth)
	sb.WriteString("\n")
	sb.WriteString(blockRows)
	sb.WriteString(`</table>`)
	if footer != "" {
		sb.WriteString(footer)
	}
	sb.WriteString(`</td></tr></table>`)
	return sb.String()
}

func cardRadiusFor(style effectiveStyle) string {
	if style.Rounded {
		return cardRadius
	}
	return "0"
}

// wrapHTMLDocument wraps the rendered body in the head/body shell shared by
// both layouts.
func wrapHTMLDocument(body string, style effectiveStyle) string {
	pageBg := style.Background
	if style.Inset {
		pageBg = style.CanvasColor
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(`<html lang="en">`)
	sb.WriteString(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><meta http-equiv="X-UA-Compatible" content="IE=edge"><title></title></head>`)
	fmt.Fprintf(&sb, `<body style="margin: 0; padding: 0; word-spacing: normal; background-color: %s;">`, escapeAttr(pageBg))
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n</body></html>")
	return sb.String()
}
