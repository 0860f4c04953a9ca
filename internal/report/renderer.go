package report

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/JonMunkholm/cloudsaver/internal/core"
)

// Options configures a Renderer.
type Options struct {
	FontPath   string       // Unicode TTF used for PDF text; empty disables it
	FontFamily string       // Family name the TTF is registered under
	Logger     *slog.Logger // Defaults to slog.Default()
}

// Renderer produces report files. It is safe for concurrent use; each
// Render call builds its own document.
type Renderer struct {
	fontFamily string
	fonts      []*entity.CustomFont
	logger     *slog.Logger
}

// Result is a rendered report.
type Result struct {
	ID     uuid.UUID
	Format Format
	Body   []byte
}

// Filename returns the attachment file name.
func (r *Result) Filename() string { return r.Format.Filename() }

// ContentType returns the media type of Body.
func (r *Result) ContentType() string { return r.Format.ContentType() }

// NewRenderer loads the configured PDF font. If the font cannot be loaded
// the renderer falls back to Helvetica and logs a warning. Helvetica has no
// Hangul glyphs, so Korean labels in fallback PDFs do not render correctly.
func NewRenderer(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Renderer{
		fontFamily: fontfamily.Helvetica,
		logger:     logger,
	}

	if opts.FontPath == "" || opts.FontFamily == "" {
		logger.Warn("no report font configured, PDF falls back to Helvetica")
		return r
	}

	fonts, err := repository.New().
		AddUTF8Font(opts.FontFamily, fontstyle.Normal, opts.FontPath).
		AddUTF8Font(opts.FontFamily, fontstyle.Bold, opts.FontPath).
		Load()
	if err != nil {
		logger.Warn("report font unavailable, PDF falls back to Helvetica",
			slog.String("path", opts.FontPath),
			slog.String("error", err.Error()),
		)
		return r
	}

	r.fontFamily = opts.FontFamily
	r.fonts = fonts
	return r
}

// UnicodeFont reports whether the configured TTF was loaded.
func (r *Renderer) UnicodeFont() bool {
	return r.fonts != nil
}

// Render validates doc and produces a report in the given format.
func (r *Renderer) Render(format Format, doc Document) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	res := &Result{ID: uuid.New(), Format: format}

	var err error
	switch format {
	case FormatCSV:
		res.Body, err = renderCSV(doc)
		if err != nil {
			err = fmt.Errorf("%w: csv: %v", core.ErrRender, err)
		}
	case FormatPDF:
		res.Body, err = r.renderPDF(res.ID, doc)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, format)
	}
	if err != nil {
		r.logger.Error("report rendering failed",
			slog.String("report_id", res.ID.String()),
			slog.String("format", string(format)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	r.logger.Debug("report rendered",
		slog.String("report_id", res.ID.String()),
		slog.String("format", string(format)),
		slog.Int("suggestions", len(doc.Suggestions)),
		slog.Int("bytes", len(res.Body)),
	)
	return res, nil
}
