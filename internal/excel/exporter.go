package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/checkinbot/pkg/models"
)

// SheetName is the worksheet holding the daily report
const SheetName = "Daily Report"

// ReportRow is one user's snapshot in the daily report
type ReportRow struct {
	UserID  int64
	Summary models.Summary
}

var kindTitles = map[models.ActivityKind]string{
	models.Work:   "Work",
	models.Eat:    "Eat",
	models.Toilet: "Toilet",
	models.Smoke:  "Smoke",
}

type column struct {
	header string
	value  func(ReportRow) interface{}
}

// columns defines the report layout: User ID, then a count and time pair per
// activity kind in display order, then the grand total
var columns = func() []column {
	cols := []column{
		{"User ID", func(r ReportRow) interface{} { return r.UserID }},
	}
	for _, kind := range models.Kinds {
		cols = append(cols,
			column{kindTitles[kind] + " Count", countOf(kind)},
			column{kindTitles[kind] + " Time", durationOf(kind)},
		)
	}
	return append(cols, column{"Grand Total", func(r ReportRow) interface{} {
		return models.FormatDuration(r.Summary.GrandTotal)
	}})
}()

func countOf(kind models.ActivityKind) func(ReportRow) interface{} {
	return func(r ReportRow) interface{} { return r.Summary.Counts[kind] }
}

func durationOf(kind models.ActivityKind) func(ReportRow) interface{} {
	return func(r ReportRow) interface{} { return models.FormatDuration(r.Summary.Durations[kind]) }
}

// BuildDailyReport creates an Excel workbook with one row per user for the
// given report date. The caller owns the returned file and must Close it.
func BuildDailyReport(date time.Time, rows []ReportRow) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create report sheet: %v", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %v", err)
	}

	// Title row with the report date, then headers, then one row per user
	if err := f.SetCellValue(SheetName, "A1", "Check-in report "+date.Format("2006-01-02")); err != nil {
		f.Close()
		return nil, err
	}
	for c, col := range columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, col.header); err != nil {
			f.Close()
			return nil, err
		}
	}

	for r, row := range rows {
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+3)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, col.value(row)); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	return f, nil
}

// ReportBytes renders the daily report as xlsx file contents, ready to be
// sent as a document
func ReportBytes(date time.Time, rows []ReportRow) ([]byte, error) {
	f, err := BuildDailyReport(date, rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %v", err)
	}
	return buf.Bytes(), nil
}
