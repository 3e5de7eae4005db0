// Package export writes absence records and report charts to files.
package export

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/sadopc/absentee/internal/dates"
	"github.com/sadopc/absentee/internal/metrics"
)

// Format is an export file type.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	XLSX Format = "xlsx"
	SVG  Format = "svg"
)

var Formats = []Format{CSV, JSON, XLSX, SVG}

// MonthFileName returns "absences-2024-03.csv" style names.
func MonthFileName(year, month0 int, f Format) string {
	return fmt.Sprintf("absences-%04d-%02d.%s", year, month0+1, f)
}

// DayFileName returns "absences-2024-03-05.csv" style names.
func DayFileName(date string, f Format) string {
	return fmt.Sprintf("absences-%s.%s", date, f)
}

// ReportDirName names the directory of a month's SVG bundle.
func ReportDirName(year, month0 int) string {
	from, _ := dates.MonthRange(year, month0)
	return "report-" + from[:7]
}

func done(format, path string, records int) {
	metrics.ExportsTotal.WithLabelValues(format).Inc()
	logrus.WithFields(logrus.Fields{
		"format":  format,
		"path":    filepath.Clean(path),
		"records": records,
	}).Info("export written")
}
