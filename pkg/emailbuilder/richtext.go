package emailbuilder

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Baseline inline styles injected into WYSIWYG markup. Email clients ignore
// stylesheet CSS almost universally, so everything the editor expressed
// through classes has to be restated inline.
const (
	h1Style = "margin: 28px 0 12px; font-size: 28px; font-weight: 700; line-height: 1.3"
	h2Style = "margin: 24px 0 10px; font-size: 22px; font-weight: 700; line-height: 1.35"
	h3Style = "margin: 20px 0 8px; font-size: 18px; font-weight: 600; line-height: 1.4"
	pStyle  = "margin: 0 0 16px; font-size: 16px; font-weight: 400; line-height: 1.6"
	liStyle = "font-size: 16px; margin-bottom: 8px"

	// Spacer substituted for empty paragraphs: clients collapse genuinely
	// empty block elements inconsistently.
	paragraphSpacer = `<div style="line-height: 16px; font-size: 16px;">&nbsp;</div>`
)

// mentionPlaceholders maps the editor's mention identifiers to the literal
// text shown when the recipient value is missing.
var mentionPlaceholders = map[string]string{
	"first-name": "@first-name",
	"last-name":  "@last-name",
	"email":      "@email",
}

func (p Personalization) mentionValue(id string) string {
	switch id {
	case "first-name":
		return p.FirstName
	case "last-name":
		return p.LastName
	case "email":
		return p.Email
	}
	return ""
}

// normalizeRichText rewrites a WYSIWYG HTML fragment into inline-styled,
// email-safe HTML and substitutes personalization mentions. It never fails:
// the worst case on unparseable input is a pass-through of the original
// content.
func (r *renderer) normalizeRichText(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	// Class attributes carry no signal for email clients.
	doc.Find("*").RemoveAttr("class")

	// Mentions become the recipient value, or stay as literal placeholder
	// text so a missing field never produces broken markup.
	doc.Find("span[data-id]").Each(func(_ int, s *goquery.Selection) {
		id := s.AttrOr("data-id", "")
		placeholder, known := mentionPlaceholders[id]
		if !known {
			return
		}
		value := r.person.mentionValue(id)
		if value == "" {
			value = placeholder
		}
		s.ReplaceWithHtml(html.EscapeString(value))
	})

	appendInlineStyle(doc.Find("h1"), h1Style)
	appendInlineStyle(doc.Find("h2"), h2Style)
	appendInlineStyle(doc.Find("h3"), h3Style)
	appendInlineStyle(doc.Find("p"), pStyle)

	linkStyle := fmt.Sprintf("color: %s; text-decoration: underline; font-size: 16px", r.style.LinkColor)
	appendInlineStyle(doc.Find("a"), linkStyle)

	// Empty paragraphs become explicit spacers.
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) != "" {
			return
		}
		if s.Find("img, a").Length() > 0 {
			return
		}
		s.ReplaceWithHtml(paragraphSpacer)
	})

	appendInlineStyle(doc.Find("li"), liStyle)

	// The heading margins above assume mid-document placement; a fragment
	// that opens with a heading should sit flush with the block top.
	first := doc.Find("body").Children().First()
	switch goquery.NodeName(first) {
	case "h1", "h2", "h3":
		appendInlineStyle(first, "margin-top: 0")
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return content
	}
	return out
}

// appendInlineStyle adds declarations to each element's style attribute,
// preserving author-supplied inline style by appending rather than
// overwriting.
func appendInlineStyle(sel *goquery.Selection, style string) {
	sel.Each(func(_ int, s *goquery.Selection) {
		existing := strings.TrimSpace(s.AttrOr("style", ""))
		if existing == "" {
			s.SetAttr("style", style)
			return
		}
		existing = strings.TrimRight(existing, ";")
		s.SetAttr("style", existing+"; "+style)
	})
}
