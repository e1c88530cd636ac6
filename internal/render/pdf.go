package render

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Printer converts a rendered HTML file into a PDF.
type Printer interface {
	PrintPDF(ctx context.Context, htmlPath, pdfPath string) error
}

// ChromePrinter prints with a headless Chrome driven over the DevTools
// protocol. An empty Bin lets the launcher find or download a browser.
type ChromePrinter struct {
	Bin     string
	Timeout time.Duration
	Log     *zap.Logger
}

func NewChromePrinter(bin string, log *zap.Logger) *ChromePrinter {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChromePrinter{Bin: bin, Timeout: 60 * time.Second, Log: log}
}

func (p *ChromePrinter) PrintPDF(ctx context.Context, htmlPath, pdfPath string) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return err
	}

	l := launcher.New().Context(ctx).Headless(true)
	if p.Bin != "" {
		l = l.Bin(p.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect chrome: %w", err)
	}
	defer browser.Close()

	target := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	page, err := browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("load %s: %w", target, err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return fmt.Errorf("print %s: %w", htmlPath, err)
	}
	defer stream.Close()

	if err := os.MkdirAll(filepath.Dir(pdfPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(pdfPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, stream); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", pdfPath, err)
	}
	p.Log.Debug("pdf written", zap.String("html", htmlPath), zap.String("pdf", pdfPath))
	return f.Close()
}
