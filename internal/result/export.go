package result

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskapi/internal/task"
)

// Source yields the tasks to export. *client.Client satisfies it.
type Source interface {
	List(ctx context.Context) ([]task.Task, error)
}

type Exporter struct{ src Source }

func NewExporter(src Source) *Exporter { return &Exporter{src: src} }

// Formats lists what Export understands.
var Formats = []string{"json", "csv", "pdf"}

func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	all, err := e.src.List(ctx)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "json":
		if all == nil {
			all = []task.Task{}
		}
		b, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "csv":
		return exportCSV(all)
	case "pdf":
		return exportPDF(all)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func exportCSV(all []task.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"index", "id", "title", "task"})
	for i, t := range all {
		id, _ := t.Field("id")
		title, _ := t.Field("title")
		_ = w.Write([]string{strconv.Itoa(i + 1), id, title, t.String()})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func exportPDF(all []task.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	if len(all) == 0 {
		pdf.MultiCell(0, 6, "(no tasks)", "0", "L", false)
	}
	for i, t := range all {
		pdf.MultiCell(0, 6, tr(pdfLine(i+1, t)), "0", "L", false)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfLine(n int, t task.Task) string {
	title, ok := t.Field("title")
	if !ok {
		return fmt.Sprintf("%d. %s", n, t)
	}
	if id, ok := t.Field("id"); ok {
		return fmt.Sprintf("%d. [%s] %s", n, id, title)
	}
	return fmt.Sprintf("%d. %s", n, title)
}
