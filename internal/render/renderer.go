package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const watermarkText = "LEGAL RESEARCH ASSISTANT"

// briefTemplate wraps the converted brief body. The watermark marks the
// document as machine-generated research, not a court record.
const briefTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body {
            font-family: 'Georgia', serif;
            margin: 40px;
            line-height: 1.7;
            color: #222;
        }
        h1, h2, h3 {
            color: #2c3e50;
        }
        strong {
            font-weight: bold;
            color: #000;
        }
        p {
            margin-bottom: 12px;
        }
        .watermark {
            position: fixed;
            top: 45%%;
            left: 25%%;
            transform: rotate(-45deg);
            font-size: 60px;
            color: rgba(150, 150, 150, 0.2);
            z-index: 0;
            width: 100%%;
            text-align: center;
            pointer-events: none;
        }
    </style>
</head>
<body>
<div class="watermark">%s</div>
%s
</body>
</html>
`

// Printer turns an HTML document into PDF bytes
type Printer interface {
	PrintHTML(ctx context.Context, html string) ([]byte, error)
}

// Renderer converts a markdown brief into a styled PDF file
type Renderer struct {
	printer Printer
	md      goldmark.Markdown
	log     *logrus.Entry
}

// NewRenderer creates a renderer backed by the given printer
func NewRenderer(printer Printer, log *logrus.Entry) *Renderer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Renderer{
		printer: printer,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		log: log,
	}
}

// BuildHTML converts the brief markdown to a complete styled HTML document
func (r *Renderer) BuildHTML(title, brief string) (string, error) {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(brief), &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return fmt.Sprintf(briefTemplate, html.EscapeString(title), watermarkText, body.String()), nil
}

// Render writes the brief for title as a styled PDF at outputPath
func (r *Renderer) Render(ctx context.Context, title, brief, outputPath string) error {
	doc, err := r.BuildHTML(title, brief)
	if err != nil {
		return fmt.Errorf("render %q: %w", title, err)
	}

	pdfData, err := r.printer.PrintHTML(ctx, doc)
	if err != nil {
		return fmt.Errorf("render %q: print pdf: %w", title, err)
	}
	if len(pdfData) == 0 {
		return fmt.Errorf("render %q: pdf generation produced empty result", title)
	}

	if err := os.WriteFile(outputPath, pdfData, 0644); err != nil {
		return fmt.Errorf("render %q: write pdf: %w", title, err)
	}

	r.log.WithFields(logrus.Fields{
		"path":  outputPath,
		"bytes": len(pdfData),
	}).Debug("Brief rendered")
	return nil
}
