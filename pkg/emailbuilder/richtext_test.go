package emailbuilder

import (
	"strings"
	"testing"
)

func newTestRenderer(person *Personalization) *renderer {
	r := &renderer{
		style:  resolveStyle(EmailStyle{}),
		assets: AssetResolver{BaseURL: "https://cdn.example.com"},
	}
	if person != nil {
		r.person = *person
	}
	return r
}

func TestNormalizeRichTextMentionWithValue(t *testing.T) {
	r := newTestRenderer(&Personalization{FirstName: "Jordan"})
	in := `<p>Hi <span data-type="mention" data-id="first-name">@first-name</span>, welcome.</p>`

	out := r.normalizeRichText(in)
	if !strings.Contains(out, "Hi Jordan, welcome.") {
		t.Errorf("expected mention substitution, got %s", out)
	}
	if strings.Contains(out, "data-id") {
		t.Errorf("mention span must be removed, got %s", out)
	}
}

func TestNormalizeRichTextMentionWithoutValue(t *testing.T) {
	r := newTestRenderer(nil)
	in := `<p>Hi <span data-id="last-name">@last-name</span></p>`

	out := r.normalizeRichText(in)
	if !strings.Contains(out, "Hi @last-name") {
		t.Errorf("expected literal placeholder, got %s", out)
	}
}

func TestNormalizeRichTextUnknownMentionLeftAlone(t *testing.T) {
	r := newTestRenderer(&Personalization{FirstName: "Jordan"})
	in := `<p><span data-id="company">@company</span></p>`

	out := r.normalizeRichText(in)
	if !strings.Contains(out, `data-id="company"`) {
		t.Errorf("unknown mention id must be left alone, got %s", out)
	}
}

func TestNormalizeRichTextMentionValueEscaped(t *testing.T) {
	r := newTestRenderer(&Personalization{FirstName: `<b>Jo</b>`})
	in := `<p><span data-id="first-name">@first-name</span></p>`

	out := r.normalizeRichText(in)
	if strings.Contains(out, "<b>Jo</b>") {
		t.Errorf("mention value must be escaped, got %s", out)
	}
	if !strings.Contains(out, "&lt;b&gt;Jo&lt;/b&gt;") {
		t.Errorf("expected escaped value, got %s", out)
	}
}

func TestNormalizeRichTextStripsClasses(t *testing.T) {
	r := newTestRenderer(nil)
	out := r.normalizeRichText(`<p class="editor-paragraph"><strong class="bold">x</strong></p>`)
	if strings.Contains(out, "class=") {
		t.Errorf("class attributes must be stripped, got %s", out)
	}
}

func TestNormalizeRichTextInlineStyles(t *testing.T) {
	r := newTestRenderer(nil)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "paragraph", input: "<p>x</p>", want: "margin: 0 0 16px; font-size: 16px"},
		{name: "h2", input: "<p>intro</p><h2>Title</h2>", want: "margin: 24px 0 10px; font-size: 22px"},
		{name: "h3", input: "<p>intro</p><h3>Title</h3>", want: "margin: 20px 0 8px; font-size: 18px"},
		{name: "list item", input: "<ul><li>x</li></ul>", want: "font-size: 16px; margin-bottom: 8px"},
		{name: "link color", input: `<p><a href="https://example.com">x</a></p>`, want: "color: #2563eb; text-decoration: underline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.normalizeRichText(tt.input)
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in output: %s", tt.want, out)
			}
		})
	}
}

func TestNormalizeRichTextPreservesAuthorStyle(t *testing.T) {
	r := newTestRenderer(nil)
	out := r.normalizeRichText(`<p style="color: red;">x</p>`)
	if !strings.Contains(out, "color: red; margin: 0 0 16px") {
		t.Errorf("author style must be preserved and appended to, got %s", out)
	}
}

func TestNormalizeRichTextEmptyParagraphSpacer(t *testing.T) {
	r := newTestRenderer(nil)
	out := r.normalizeRichText("<p>above</p><p></p><p>below</p>")
	if !strings.Contains(out, `line-height: 16px; font-size: 16px;`) {
		t.Errorf("expected spacer div, got %s", out)
	}
	if !strings.Contains(out, "<div") {
		t.Errorf("spacer must be a div, got %s", out)
	}
}

func TestNormalizeRichTextEmptyParagraphWithImageKept(t *testing.T) {
	r := newTestRenderer(nil)
	out := r.normalizeRichText(`<p><img src="https://example.com/x.png"></p>`)
	if !strings.Contains(out, "<img") {
		t.Errorf("image-only paragraph must survive, got %s", out)
	}
}

func TestNormalizeRichTextLeadingHeadingFlush(t *testing.T) {
	r := newTestRenderer(nil)
	out := r.normalizeRichText("<h1>Title</h1><p>body</p>")
	if !strings.Contains(out, "margin-top: 0") {
		t.Errorf("leading heading must sit flush, got %s", out)
	}
}

func TestNormalizeRichTextMidDocumentHeadingKeepsMargin(t *testing.T) {
	r := newTestRenderer(nil)
	out := r.normalizeRichText("<p>intro</p><h1>Title</h1>")
	if strings.Contains(out, "margin-top: 0") {
		t.Errorf("mid-document heading must keep its top margin, got %s", out)
	}
}

func TestNormalizeRichTextEmptyContent(t *testing.T) {
	r := newTestRenderer(nil)
	if out := r.normalizeRichText("   "); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
