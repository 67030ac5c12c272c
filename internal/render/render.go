// Package render produces the paginated report artifact via pdfcpu using a
// two-pass protocol: a measuring pass that resolves the true page total,
// then a final pass whose headers carry "page X of N".
package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/registrar-tools/tally/internal/report"
)

// unresolvedTotal fills the page-total header slot on the measuring pass.
const unresolvedTotal = "?"

// Renderer is the paginated rendering collaborator.
type Renderer interface {
	// Measure renders the document without a resolved page total and
	// reports the page count of the result. No usable artifact survives
	// this pass.
	Measure(ctx context.Context, doc report.Document) (int, error)

	// Render produces the final artifact at outPath with pageTotal in the
	// headers, returning the actual page count of the output.
	Render(ctx context.Context, doc report.Document, pageTotal int, outPath string) (int, error)
}

// PDF renders report documents to PDF files via pdfcpu.
type PDF struct {
	cfg    Config
	logger *slog.Logger
}

// NewPDF creates a PDF renderer with the given configuration.
func NewPDF(cfg Config, logger *slog.Logger) *PDF {
	return &PDF{
		cfg:    cfg,
		logger: logger.With("system", "render"),
	}
}

func (p *PDF) Measure(ctx context.Context, doc report.Document) (int, error) {
	tmpDir, err := os.MkdirTemp("", "tally-measure-")
	if err != nil {
		return 0, fmt.Errorf("%w: create temp dir: %w", ErrRenderFailed, err)
	}
	defer os.RemoveAll(tmpDir)

	outPath := filepath.Join(tmpDir, "measure.pdf")
	count, err := p.render(ctx, doc, unresolvedTotal, outPath)
	if err != nil {
		return 0, err
	}

	p.logger.Debug("measuring pass complete", "pages", count)
	return count, nil
}

func (p *PDF) Render(ctx context.Context, doc report.Document, pageTotal int, outPath string) (int, error) {
	count, err := p.render(ctx, doc, fmt.Sprintf("%d", pageTotal), outPath)
	if err != nil {
		return 0, err
	}

	p.logger.Info("report rendered", "path", outPath, "pages", count)
	return count, nil
}

func (p *PDF) render(ctx context.Context, doc report.Document, totalLabel, outPath string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	desc, err := p.describe(doc, totalLabel)
	if err != nil {
		return 0, fmt.Errorf("%w: build page description: %w", ErrRenderFailed, err)
	}

	tmpDir, err := os.MkdirTemp("", "tally-describe-")
	if err != nil {
		return 0, fmt.Errorf("%w: create temp dir: %w", ErrRenderFailed, err)
	}
	defer os.RemoveAll(tmpDir)

	descPath := filepath.Join(tmpDir, "report.json")
	if err := os.WriteFile(descPath, desc, 0o644); err != nil {
		return 0, fmt.Errorf("%w: write page description: %w", ErrRenderFailed, err)
	}

	if err := api.CreateFile("", descPath, outPath, nil); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	count, err := api.PageCountFile(outPath)
	if err != nil {
		return 0, fmt.Errorf("%w: count pages: %w", ErrRenderFailed, err)
	}

	return count, nil
}

// Paginate runs the two-pass protocol: measure, then render with the
// resolved total. A mismatch between the measured and final counts means
// the header may read wrong; that is a cosmetic defect and is logged at
// WARN rather than failing the run.
func Paginate(ctx context.Context, r Renderer, logger *slog.Logger, doc report.Document, outPath string) (int, error) {
	measured, err := r.Measure(ctx, doc)
	if err != nil {
		return 0, err
	}

	actual, err := r.Render(ctx, doc, measured, outPath)
	if err != nil {
		return 0, err
	}

	if actual != measured {
		logger.Warn(
			"page total drifted between passes; header may be stale",
			"measured", measured,
			"actual", actual,
		)
	}

	return actual, nil
}
