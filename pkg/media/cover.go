package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	openaiclient "github.com/openai/openai-go/v2"
)

const defaultCoverStyle = "rich, detailed, book cover, cinematic lighting, cohesive typography, high-contrast focal point"

// CoverGenerator produces a PNG illustration for a chosen book. Paths are
// keyed by "cover:"+title so each title maps to one stable file.
type CoverGenerator struct {
	outDir string
	model  string

	render func(ctx context.Context, prompt string) ([]byte, error)
}

func NewCoverGenerator(client openaiclient.Client, model, outDir string) *CoverGenerator {
	if model == "" {
		model = "gpt-image-1"
	}
	g := &CoverGenerator{
		outDir: outDir,
		model:  model,
	}
	g.render = func(ctx context.Context, prompt string) ([]byte, error) {
		img, err := client.Images.Generate(ctx, openaiclient.ImageGenerateParams{
			Model:  openaiclient.ImageModel(g.model),
			Prompt: prompt,
			Size:   openaiclient.ImageGenerateParamsSize1024x1024,
			N:      openaiclient.Int(1),
		})
		if err != nil {
			return nil, err
		}
		if len(img.Data) == 0 {
			return nil, fmt.Errorf("empty image response")
		}
		return base64.StdEncoding.DecodeString(img.Data[0].B64JSON)
	}
	return g
}

// TargetPath precomputes where the cover for a given title will live.
func (g *CoverGenerator) TargetPath(title string) string {
	return filepath.Join(g.outDir, HashText("cover:"+title)+".png")
}

// Generate renders a cover for title, short-circuiting when the target file
// already exists.
func (g *CoverGenerator) Generate(ctx context.Context, title, short string, tags []string, style string) Result {
	res := Result{Kind: "cover"}

	if strings.TrimSpace(title) == "" {
		res.Err = fmt.Errorf("generate cover: missing title")
		return res
	}

	res.Path = g.TargetPath(title)
	if _, err := os.Stat(res.Path); err == nil {
		res.Skipped = true
		return res
	}

	if err := os.MkdirAll(g.outDir, 0755); err != nil {
		res.Err = err
		return res
	}

	raw, err := g.render(ctx, buildCoverPrompt(title, short, tags, style))
	if err != nil {
		res.Err = fmt.Errorf("openai image: %w", err)
		return res
	}

	res.Err = writeAtomic(res.Path, bytes.NewReader(raw))
	return res
}

// buildCoverPrompt asks for a representative illustration rather than a
// literal cover with the exact title rendered as text.
func buildCoverPrompt(title, short string, tags []string, style string) string {
	if len(tags) > 5 {
		tags = tags[:5]
	}
	if style == "" {
		style = defaultCoverStyle
	}
	return fmt.Sprintf(
		"Create a representative cover-style illustration inspired by the book.\n"+
			"Title (for inspiration): %s\n"+
			"Key ideas: %s\n"+
			"One-line theme: %s\n"+
			"Style: %s\n"+
			"Rules: No large text blocks; no logos. Clean composition with one strong focal element.",
		title, strings.Join(tags, ", "), short, style,
	)
}
