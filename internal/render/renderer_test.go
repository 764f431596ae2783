package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type mockPrinter struct {
	html   string
	output []byte
	err    error
}

func (m *mockPrinter) PrintHTML(_ context.Context, html string) ([]byte, error) {
	m.html = html
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func TestBuildHTML(t *testing.T) {
	r := NewRenderer(&mockPrinter{}, nil)

	brief := "**Case Name:** Kesavananda Bharati vs State Of Kerala\n\n**Facts:**\nBasic structure doctrine.\n"
	doc, err := r.BuildHTML("Kesavananda Bharati vs State Of Kerala", brief)
	if err != nil {
		t.Fatalf("BuildHTML failed: %v", err)
	}

	for _, want := range []string{
		"<strong>Case Name:</strong>",
		"Georgia",
		"#2c3e50",
		`class="watermark"`,
		"LEGAL RESEARCH ASSISTANT",
		"<title>Kesavananda Bharati vs State Of Kerala</title>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestBuildHTML_EscapesTitle(t *testing.T) {
	r := NewRenderer(&mockPrinter{}, nil)

	doc, err := r.BuildHTML("A <B> & C", "body")
	if err != nil {
		t.Fatalf("BuildHTML failed: %v", err)
	}
	if !strings.Contains(doc, "<title>A &lt;B&gt; &amp; C</title>") {
		t.Error("Title not escaped in HTML head")
	}
}

func TestRender_WritesPDF(t *testing.T) {
	printer := &mockPrinter{output: []byte("%PDF-1.4 fake")}
	r := NewRenderer(printer, nil)

	out := filepath.Join(t.TempDir(), "brief.pdf")
	if err := r.Render(context.Background(), "Some Case", "**Case Name:** Some Case", out); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Reading output failed: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("Unexpected PDF content: %q", data)
	}
	if !strings.Contains(printer.html, "watermark") {
		t.Error("Printer did not receive the styled document")
	}
}

func TestRender_PrinterError(t *testing.T) {
	printer := &mockPrinter{err: errors.New("chrome crashed")}
	r := NewRenderer(printer, nil)

	out := filepath.Join(t.TempDir(), "brief.pdf")
	err := r.Render(context.Background(), "Some Case", "body", out)
	if err == nil {
		t.Fatal("Expected error from failing printer")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("No file should be written on printer failure")
	}
}

func TestRender_EmptyOutput(t *testing.T) {
	printer := &mockPrinter{output: nil}
	r := NewRenderer(printer, nil)

	out := filepath.Join(t.TempDir(), "brief.pdf")
	if err := r.Render(context.Background(), "Some Case", "body", out); err == nil {
		t.Fatal("Expected error for empty PDF output")
	}
}
