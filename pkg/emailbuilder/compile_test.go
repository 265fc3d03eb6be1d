package emailbuilder

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRequestValidate(t *testing.T) {
	req := CompileRequest{}
	assert.NoError(t, req.Validate())

	req.Tracking.EnableTracking = true
	assert.Error(t, req.Validate(), "tracking without an endpoint must be rejected")

	req.Tracking.Endpoint = "https://track.example.com"
	assert.NoError(t, req.Validate())
}

func TestCompileTemplateBasic(t *testing.T) {
	c := testCompiler()
	req := CompileRequest{
		Document: NewDocument(NewSection(&TextBlock{Content: "<p>Hello there</p>"})),
	}

	resp, err := c.CompileTemplate(req)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.HTML)
	assert.Contains(t, *resp.HTML, "Hello there")
	assert.True(t, strings.HasPrefix(*resp.HTML, "<!DOCTYPE html>"))
}

func TestCompileTemplateValidationFailure(t *testing.T) {
	c := testCompiler()
	req := CompileRequest{Tracking: TrackingSettings{EnableTracking: true}}

	resp, err := c.CompileTemplate(req)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Contains(t, *resp.Error, "tracking enabled without an endpoint")
	assert.Nil(t, resp.HTML)
}

func TestCompileTemplateLiquid(t *testing.T) {
	c := testCompiler()
	req := CompileRequest{
		Document: NewDocument(NewSection(
			&TextBlock{Content: "<p>Your plan: {{ plan }}</p>"},
		)),
		TemplateData: MapOfAny{"plan": "Pro"},
	}

	resp, err := c.CompileTemplate(req)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Contains(t, *resp.HTML, "Your plan: Pro")
}

func TestCompileTemplateLiquidConditional(t *testing.T) {
	c := testCompiler()
	req := CompileRequest{
		Document: NewDocument(NewSection(
			&TextBlock{Content: "<p>{% if vip %}Welcome back!{% else %}Hello.{% endif %}</p>"},
		)),
		TemplateData: MapOfAny{"vip": true},
	}

	resp, err := c.CompileTemplate(req)
	require.NoError(t, err)
	assert.Contains(t, *resp.HTML, "Welcome back!")
	assert.NotContains(t, *resp.HTML, "Hello.")
}

func TestCompileTemplateLiquidErrorKeepsOriginal(t *testing.T) {
	c := testCompiler()
	broken := "<p>{% if %}unclosed</p>"
	req := CompileRequest{
		Document:     NewDocument(NewSection(&TextBlock{Content: broken})),
		TemplateData: MapOfAny{"x": 1},
	}

	resp, err := c.CompileTemplate(req)
	require.NoError(t, err)
	require.True(t, resp.Success, "a broken liquid tag must degrade, not fail the compile")
	assert.Contains(t, *resp.HTML, "unclosed")
}

func TestApplyLiquidDoesNotMutateInput(t *testing.T) {
	original := "<p>Hi {{ name }}</p>"
	doc := NewDocument(NewSection(&TextBlock{Content: original}))

	out := applyLiquid(doc, MapOfAny{"name": "Sam"})

	assert.Equal(t, original, doc.Sections[0].Blocks[0].(*TextBlock).Content, "input must stay untouched")
	assert.Contains(t, out.Sections[0].Blocks[0].(*TextBlock).Content, "Hi Sam")
}

func TestRenderLiquidSizeCap(t *testing.T) {
	content := strings.Repeat("a", liquidMaxContentSize+1)
	_, err := renderLiquid(content, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds liquid limit")
}

func TestCompileTemplatePreheader(t *testing.T) {
	c := testCompiler()
	req := CompileRequest{
		Document:  NewDocument(NewSection(&TextBlock{Content: "<p>body</p>"})),
		Preheader: "This week: 5 tools & tips",
	}

	resp, err := c.CompileTemplate(req)
	require.NoError(t, err)
	html := *resp.HTML

	assert.Contains(t, html, "This week: 5 tools &amp; tips")
	assert.Contains(t, html, "display: none; max-height: 0; overflow: hidden; mso-hide: all;")

	// Preview text must precede the visible content.
	preheaderAt := strings.Index(html, "This week")
	bodyAt := strings.Index(html, ">body<")
	require.GreaterOrEqual(t, bodyAt, 0)
	assert.Less(t, preheaderAt, bodyAt)
}

func TestCompileTemplateTracking(t *testing.T) {
	c := testCompiler()
	req := CompileRequest{
		Document: NewDocument(NewSection(
			&ButtonBlock{Text: "Read", Link: "https://example.com/post"},
		)),
		Tracking: TrackingSettings{
			EnableTracking: true,
			Endpoint:       "https://track.example.com",
			UTMSource:      "newsletter",
			WorkspaceID:    "ws1",
			MessageID:      "msg1",
			SentAt:         1700000000,
		},
	}

	resp, err := c.CompileTemplate(req)
	require.NoError(t, err)
	html := *resp.HTML

	assert.Contains(t, html, "https://track.example.com/visit?mid=msg1&wid=ws1&ts=1700000000&url=")
	assert.Contains(t, html, "utm_source%3Dnewsletter", "UTM tag must ride inside the redirect URL")
	assert.Contains(t, html, "https://track.example.com/opens?mid=msg1&wid=ws1&ts=1700000000")
}

func TestCompileTemplateTrackingDeterministicWithSentAt(t *testing.T) {
	c := testCompiler()
	req := CompileRequest{
		Document: NewDocument(NewSection(
			&ButtonBlock{Text: "Read", Link: "https://example.com"},
		)),
		Tracking: TrackingSettings{
			EnableTracking: true,
			Endpoint:       "https://track.example.com",
			SentAt:         1700000000,
		},
	}

	first, err := c.CompileTemplate(req)
	require.NoError(t, err)
	second, err := c.CompileTemplate(req)
	require.NoError(t, err)
	assert.Equal(t, *first.HTML, *second.HTML)
}

func TestCompileBatch(t *testing.T) {
	c := testCompiler()
	req := CompileRequest{
		Document: NewDocument(NewSection(&TextBlock{
			Content: `<p>Hi <span data-id="first-name">@first-name</span></p>`,
		})),
	}
	recipients := make([]Personalization, 20)
	for i := range recipients {
		recipients[i] = Personalization{FirstName: fmt.Sprintf("Recipient%d", i)}
	}

	results, err := c.CompileBatch(context.Background(), req, recipients)
	require.NoError(t, err)
	require.Len(t, results, len(recipients))
	for i, html := range results {
		assert.Contains(t, html, fmt.Sprintf("Hi Recipient%d", i), "results must line up with recipients")
	}
}

func TestCompileBatchEmpty(t *testing.T) {
	c := testCompiler()
	results, err := c.CompileBatch(context.Background(), CompileRequest{}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCompileBatchCancelled(t *testing.T) {
	c := testCompiler()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := CompileRequest{Document: NewDocument(NewSection(&TextBlock{Content: "<p>x</p>"}))}
	_, err := c.CompileBatch(ctx, req, make([]Personalization, 50))
	assert.Error(t, err)
}

func TestInjectPreheaderWithoutBody(t *testing.T) {
	out := injectPreheader("<div>fragment</div>", "preview")
	assert.True(t, strings.HasPrefix(out, `<div style="display: none;`))
	assert.Contains(t, out, "fragment")
}
