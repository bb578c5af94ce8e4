// Package report writes a run's results to a timestamped XLSX workbook.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/osint-cli/internal/model"
	"github.com/sells-group/osint-cli/pkg/hibp"
	"github.com/sells-group/osint-cli/pkg/shodan"
)

// Sheet names.
const (
	SheetShodan  = "Shodan Results"
	SheetHIBP    = "HaveIBeenPwned Results"
	SheetSummary = "Summary"
)

// DefaultRoot is the directory reports are written under.
const DefaultRoot = "OSINT_Reports"

// Input is everything a report can contain. Nil results were not queried.
type Input struct {
	Postcode    string
	Coordinates model.Coordinates
	Shodan      *shodan.SearchResult
	HIBP        *hibp.Result
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the time source used for the report timestamp.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// WithOutput sets where the "report saved" message is printed.
func WithOutput(out io.Writer) Option {
	return func(w *Writer) {
		w.out = out
	}
}

// Writer saves reports below a root directory.
type Writer struct {
	root string
	now  func() time.Time
	out  io.Writer
}

// NewWriter creates a Writer rooted at root (DefaultRoot if empty).
func NewWriter(root string, opts ...Option) *Writer {
	if root == "" {
		root = DefaultRoot
	}
	w := &Writer{root: root, now: time.Now, out: io.Discard}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write builds the workbook and saves it, returning the file path.
func (w *Writer) Write(in Input) (string, error) {
	generated := w.now()
	dir, path := Paths(w.root, in.Postcode, generated)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrap(err, "report: create directory")
	}

	f := xlsx.NewFile()

	if in.Shodan != nil {
		sheet, err := f.AddSheet(SheetShodan)
		if err != nil {
			return "", eris.Wrap(err, "report: add shodan sheet")
		}
		if err := writeTable(sheet, in.Shodan.Matches); err != nil {
			return "", err
		}
	}

	if in.HIBP != nil && !in.HIBP.NoBreaches() {
		sheet, err := f.AddSheet(SheetHIBP)
		if err != nil {
			return "", eris.Wrap(err, "report: add hibp sheet")
		}
		if err := writeTable(sheet, in.HIBP.Breaches); err != nil {
			return "", err
		}
	}

	summary, err := f.AddSheet(SheetSummary)
	if err != nil {
		return "", eris.Wrap(err, "report: add summary sheet")
	}
	writeSummary(summary, in, generated)

	if err := f.Save(path); err != nil {
		return "", eris.Wrap(err, "report: save workbook")
	}

	zap.L().Info("report saved",
		zap.String("path", path),
		zap.Int("sheets", len(f.Sheets)),
	)
	fmt.Fprintf(w.out, "OSINT report saved at %s\n", path)

	return path, nil
}

func writeSummary(sheet *xlsx.Sheet, in Input, generated time.Time) {
	rows := [][2]string{
		{"Field", "Value"},
		{"Postcode", in.Postcode},
		{"Latitude", in.Coordinates.Latitude},
		{"Longitude", in.Coordinates.Longitude},
		{"Generated At", generated.Format(time.RFC3339)},
		{shodan.ServiceName, shodanStatus(in.Shodan)},
		{hibp.ServiceName, hibpStatus(in.HIBP)},
	}
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r[0])
		row.AddCell().SetString(r[1])
	}
}

func shodanStatus(r *shodan.SearchResult) string {
	if r == nil {
		return "skipped"
	}
	return fmt.Sprintf("%d matches (total %d)", len(r.Matches), r.Total)
}

func hibpStatus(r *hibp.Result) string {
	switch {
	case r == nil:
		return "skipped"
	case r.NoBreaches():
		return hibp.NoBreachesMessage
	default:
		return fmt.Sprintf("%d breaches", len(r.Breaches))
	}
}
