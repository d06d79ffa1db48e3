// Package export renders the evaluation log as CSV or XLSX
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
)

// Format identifies an export output format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format string, defaulting to CSV when empty
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename builds a timestamped download filename
func (f Format) Filename(now time.Time) string {
	return fmt.Sprintf("mvr_evaluation_logs_%d.%s", now.UnixMilli(), f)
}

// headers is the column order of the exported log. The two reason
// columns carry the same data joined differently; both are kept for
// consumers of older exports.
var headers = []string{
	"timestamp",
	"driverName",
	"driverType",
	"age",
	"classification",
	"violations",
	"accidents",
	"licenseStatus",
	"licenseStatusExplanation",
	"majorConvictions",
	"finalVerdict",
	"disqualificationReasons",
	"disqualificationReason",
	"policy",
}

// listSeparator joins multi-valued fields inside a single cell
const listSeparator = "; "

func recordCells(rec *domain.EvaluationRecord) []string {
	age := ""
	if rec.Age != nil {
		age = strconv.Itoa(*rec.Age)
	}
	explanation := ""
	if rec.LicenseStatusExplanation != nil {
		explanation = *rec.LicenseStatusExplanation
	}
	reasons := strings.Join(rec.DisqualificationReasons, listSeparator)

	return []string{
		rec.EvaluatedAt.UTC().Format(time.RFC3339),
		rec.DriverName,
		string(rec.DriverType),
		age,
		string(rec.Classification),
		strconv.Itoa(rec.ViolationCount),
		strconv.Itoa(rec.AccidentCount),
		rec.LicenseStatus,
		explanation,
		strings.Join(rec.MajorConvictions, listSeparator),
		rec.FinalVerdict,
		reasons,
		reasons,
		rec.PolicyVersion,
	}
}

// multiValued marks the columns whose cells hold a joined list and so
// are always quoted in CSV output
var multiValued = map[int]bool{9: true, 11: true}

// WriteCSV writes the evaluation log as CSV. Multi-valued columns are
// quoted unconditionally; other cells are quoted only when they contain
// a delimiter.
func WriteCSV(w io.Writer, records []*domain.EvaluationRecord) error {
	if _, err := io.WriteString(w, strings.Join(headers, ",")+"\n"); err != nil {
		return err
	}
	for _, rec := range records {
		cells := recordCells(rec)
		out := make([]string, len(cells))
		for i, cell := range cells {
			out[i] = escapeCSV(cell, multiValued[i])
		}
		if _, err := io.WriteString(w, strings.Join(out, ",")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func escapeCSV(cell string, forceQuote bool) string {
	needsQuote := forceQuote ||
		strings.ContainsAny(cell, ",\"\n")
	if !needsQuote {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// WriteXLSX writes the evaluation log as an XLSX workbook with a
// single sheet.
func WriteXLSX(w io.Writer, records []*domain.EvaluationRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Evaluations"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, rec := range records {
		for col, value := range recordCells(rec) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
