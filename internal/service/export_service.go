package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"lost-and-found/internal/model"
	"lost-and-found/internal/query"
)

type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"

	reportBaseName = "lost-and-found-report"
)

var csvHeader = []string{"Name", "Description", "Category", "Status", "Date Found", "Location Found", "Claim Location"}

func ParseExportFormat(raw string) (ExportFormat, bool) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case ExportCSV, "":
		return ExportCSV, true
	case ExportPDF:
		return ExportPDF, true
	default:
		return "", false
	}
}

// Report is a rendered export ready to be sent as a download.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService struct {
	items        *ItemService
	organization string
	now          func() time.Time
}

func NewExportService(items *ItemService, organization string) *ExportService {
	return &ExportService{items: items, organization: organization, now: time.Now}
}

// Render exports the items matching opts, in the same order the list shows them.
func (s *ExportService) Render(ctx context.Context, format ExportFormat, opts query.Options) (*Report, error) {
	items, err := s.items.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var buf bytes.Buffer
	report := &Report{Filename: fmt.Sprintf("%s-%s.%s", reportBaseName, now.Format("2006-01-02"), format)}

	switch format {
	case ExportCSV:
		report.ContentType = "text/csv; charset=utf-8"
		err = WriteCSV(&buf, items)
	case ExportPDF:
		report.ContentType = "application/pdf"
		_, err = writePDF(&buf, items, s.organization, now)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", model.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	report.Data = buf.Bytes()
	return report, nil
}

// WriteCSV writes every field quoted, with embedded quotes doubled.
func WriteCSV(w io.Writer, items []model.Item) error {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))

	for _, item := range items {
		b.WriteByte('\n')
		fields := []string{
			item.Name,
			item.Description,
			item.Category,
			string(item.Status),
			query.FormatDate(item.DateFound),
			item.LocationFound,
			item.ClaimLocation,
		}
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvQuote(field))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func csvQuote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

type pdfColumn struct {
	title string
	width float64
	value func(model.Item) string
}

var pdfColumns = []pdfColumn{
	{"Item Name", 48, func(it model.Item) string { return it.Name }},
	{"Category", 30, func(it model.Item) string {
		if it.Category == "" {
			return "-"
		}
		return it.Category
	}},
	{"Status", 24, func(it model.Item) string { return string(it.Status) }},
	{"Date Found", 28, func(it model.Item) string { return query.FormatDate(it.DateFound) }},
	{"Location", 52, func(it model.Item) string { return it.LocationFound }},
}

const (
	pdfMargin    = 14.0
	pdfRowHeight = 7.0
	pdfBottom    = 20.0
)

// writePDF renders the A4 report and returns its page count.
func writePDF(w io.Writer, items []model.Item, organization string, now time.Time) (int, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetTitle("Lost & Found Report", true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfBottom)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(148, 163, 184)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(30, 64, 175)
	pdf.Text(pdfMargin, 20, tr(organization))

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(51, 65, 85)
	pdf.Text(pdfMargin, 28, "Lost & Found Report")

	stats := model.CountItems(items)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.Text(pdfMargin, 36, "Generated: "+now.Format("January 2, 2006 3:04 PM"))
	pdf.Text(pdfMargin, 42, "Total Items: "+strconv.Itoa(stats.Total))
	pdf.Text(pdfMargin, 48, fmt.Sprintf("Unclaimed: %d | Claimed: %d", stats.Unclaimed, stats.Claimed))

	pdf.SetY(55)
	drawHead := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(30, 64, 175)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, pdfRowHeight, col.title, "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	drawHead()

	_, pageHeight := pdf.GetPageSize()
	for i, item := range items {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfBottom {
			pdf.AddPage()
			drawHead()
		}

		if i%2 == 1 {
			pdf.SetFillColor(248, 250, 252)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for _, col := range pdfColumns {
			text := tr(col.value(item))
			setStatusColor(pdf, col.title, item.Status)
			pdf.CellFormat(col.width, pdfRowHeight, fitText(pdf, text, col.width-2), "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return 0, err
	}
	return pdf.PageCount(), nil
}

func setStatusColor(pdf *fpdf.Fpdf, column string, status model.ItemStatus) {
	if column != "Status" {
		pdf.SetTextColor(51, 65, 85)
		return
	}
	switch status {
	case model.ItemStatusClaimed:
		pdf.SetTextColor(16, 185, 129)
	case model.ItemStatusUnclaimed:
		pdf.SetTextColor(245, 158, 11)
	default:
		pdf.SetTextColor(51, 65, 85)
	}
}

// fitText truncates text with an ellipsis so it stays inside a cell.
func fitText(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}
