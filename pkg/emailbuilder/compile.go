package emailbuilder

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/osteele/liquid"
	"golang.org/x/sync/errgroup"
)

// Guard rails for Liquid rendering of author-supplied content.
const (
	liquidRenderTimeout  = 5 * time.Second
	liquidMaxContentSize = 100 * 1024
)

// MapOfAny carries template data for Liquid personalization.
type MapOfAny map[string]any

// CompileRequest is the contract between the editing/sending pipeline and
// the compiler: a finalized document plus style, footer, recipient context,
// template data, and tracking settings.
type CompileRequest struct {
	Document        Document         `json:"document"`
	Style           EmailStyle       `json:"style"`
	Footer          *FooterData      `json:"footer,omitempty"`
	Personalization *Personalization `json:"personalization,omitempty"`
	TemplateData    MapOfAny         `json:"template_data,omitempty"`
	Tracking        TrackingSettings `json:"tracking,omitempty"`
	Preheader       string           `json:"preheader,omitempty"`
}

// Validate rejects requests the compiler cannot act on. Content problems
// are never rejected here; they degrade at render time.
func (r *CompileRequest) Validate() error {
	if r.Tracking.EnableTracking && r.Tracking.Endpoint == "" {
		return fmt.Errorf("invalid compile request: tracking enabled without an endpoint")
	}
	return nil
}

// CompileResponse is the compile outcome. Error carries detail when
// Success is false.
type CompileResponse struct {
	Success bool    `json:"success"`
	HTML    *string `json:"html,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// CompileTemplate compiles a document end to end: Liquid personalization of
// text content, the pure render, preheader injection, and the link-tracking
// pass. A malformed document degrades to missing elements, never to a
// failed send.
func (c *Compiler) CompileTemplate(req CompileRequest) (*CompileResponse, error) {
	if err := req.Validate(); err != nil {
		msg := err.Error()
		return &CompileResponse{Success: false, Error: &msg}, nil
	}

	doc := req.Document
	if len(req.TemplateData) > 0 {
		doc = applyLiquid(doc, req.TemplateData)
	}

	html := c.Render(doc, req.Style, req.Footer, req.Personalization)
	if req.Preheader != "" {
		html = injectPreheader(html, req.Preheader)
	}
	html = TrackLinks(html, req.Tracking)

	return &CompileResponse{Success: true, HTML: &html}, nil
}

// CompileBatch compiles one document per recipient concurrently. Results
// are ordered to match recipients. The context cancels outstanding work.
func (c *Compiler) CompileBatch(ctx context.Context, req CompileRequest, recipients []Personalization) ([]string, error) {
	results := make([]string, len(recipients))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range recipients {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perRecipient := req
			perRecipient.Personalization = &recipients[i]
			resp, err := c.CompileTemplate(perRecipient)
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("compile for recipient %d: %s", i, *resp.Error)
			}
			results[i] = *resp.HTML
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// applyLiquid renders Liquid markup in text-block content against the
// template data. The input document is never mutated; blocks containing
// Liquid are replaced by rendered copies. Render failures keep the
// original content.
func applyLiquid(doc Document, data MapOfAny) Document {
	out := Document{Sections: make([]Section, len(doc.Sections))}
	for si, section := range doc.Sections {
		out.Sections[si] = Section{ID: section.ID, Blocks: make([]Block, len(section.Blocks))}
		copy(out.Sections[si].Blocks, section.Blocks)
		for bi, block := range section.Blocks {
			text, ok := block.(*TextBlock)
			if !ok {
				continue
			}
			if !strings.Contains(text.Content, "{{") && !strings.Contains(text.Content, "{%") {
				continue
			}
			rendered, err := renderLiquid(text.Content, data)
			if err != nil {
				continue
			}
			replaced := *text
			replaced.Content = rendered
			out.Sections[si].Blocks[bi] = &replaced
		}
	}
	return out
}

// renderLiquid runs the Liquid engine with a size cap, a timeout, and panic
// recovery, since the content is author supplied.
func renderLiquid(content string, data MapOfAny) (string, error) {
	if len(content) > liquidMaxContentSize {
		return "", fmt.Errorf("content size %d exceeds liquid limit %d", len(content), liquidMaxContentSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), liquidRenderTimeout)
	defer cancel()

	resultChan := make(chan string, 1)
	errorChan := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errorChan <- fmt.Errorf("panic during liquid rendering: %v", r)
			}
		}()
		rendered, err := liquid.NewEngine().ParseAndRenderString(content, map[string]interface{}(data))
		if err != nil {
			errorChan <- fmt.Errorf("liquid rendering failed: %w", err)
			return
		}
		resultChan <- rendered
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errorChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("liquid rendering timeout after %v", liquidRenderTimeout)
	}
}

var bodyOpenRegex = regexp.MustCompile(`(?i)<body[^>]*>`)

// injectPreheader inserts the hidden preview-text span right after the
// opening body tag.
func injectPreheader(html, preheader string) string {
	span := fmt.Sprintf(`<div style="display: none; max-height: 0; overflow: hidden; mso-hide: all;">%s</div>`,
		escapeHTML(preheader))
	loc := bodyOpenRegex.FindStringIndex(html)
	if loc == nil {
		return span + html
	}
	return html[:loc[1]] + span + html[loc[1]:]
}
