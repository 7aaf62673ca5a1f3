package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"roomfeed/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	readingsSheet = "Temperatures"
	summarySheet  = "Summary"
	timeLayout    = "2006-01-02 15:04:05"
)

// WriteTemperatureCSV writes one row per reading after a header row.
func WriteTemperatureCSV(w io.Writer, records []models.Temperature) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"id", "room_id", "temperature", "date"}); err != nil {
		return err
	}

	for _, record := range records {
		row := []string{
			strconv.FormatUint(uint64(record.ID), 10),
			strconv.FormatUint(uint64(record.RoomID), 10),
			strconv.FormatFloat(record.Temperature, 'f', 2, 64),
			record.Date.UTC().Format(timeLayout),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CreateTemperatureExcel writes a workbook with the readings, a chart and a
// summary sheet.
func CreateTemperatureExcel(w io.Writer, records []models.Temperature) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", readingsSheet); err != nil {
		return err
	}

	headers := []string{"ID", "Room", "Temperature (°C)", "Date (UTC)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(readingsSheet, cell, header); err != nil {
			return err
		}
	}

	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return err
	}

	for rowIdx, record := range records {
		rowNum := rowIdx + 2

		f.SetCellValue(readingsSheet, fmt.Sprintf("A%d", rowNum), record.ID)
		f.SetCellValue(readingsSheet, fmt.Sprintf("B%d", rowNum), record.RoomID)
		f.SetCellValue(readingsSheet, fmt.Sprintf("C%d", rowNum), record.Temperature)
		f.SetCellValue(readingsSheet, fmt.Sprintf("D%d", rowNum), record.Date.UTC().Format(timeLayout))
		f.SetCellStyle(readingsSheet, fmt.Sprintf("C%d", rowNum), fmt.Sprintf("C%d", rowNum), numberStyle)
	}

	for i := 1; i <= len(headers); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(readingsSheet, colName, colName, 20)
	}

	// Hot readings red, cold readings blue
	if len(records) > 0 {
		lastRow := len(records) + 1
		rangeRef := fmt.Sprintf("C2:C%d", lastRow)

		if err := f.SetConditionalFormat(readingsSheet, rangeRef, []excelize.ConditionalFormatOptions{
			{Type: "cell", Criteria: ">", Value: "30", Format: conditionalFill(f, "#FFCCCC")},
		}); err != nil {
			return err
		}
		if err := f.SetConditionalFormat(readingsSheet, rangeRef, []excelize.ConditionalFormatOptions{
			{Type: "cell", Criteria: "<", Value: "10", Format: conditionalFill(f, "#CCE5FF")},
		}); err != nil {
			return err
		}
	}

	if len(records) > 1 {
		if err := addChart(f, len(records)); err != nil {
			return err
		}
	}

	if err := addSummarySheet(f, records); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	return f.Write(w)
}

func addChart(f *excelize.File, rows int) error {
	last := rows + 1
	return f.AddChart(readingsSheet, "F2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       "Temperature",
				Categories: fmt.Sprintf("%s!$D$2:$D$%d", readingsSheet, last),
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", readingsSheet, last),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: "Temperature Over Time"},
		},
		XAxis: excelize.ChartAxis{MajorGridLines: true},
		YAxis: excelize.ChartAxis{MajorGridLines: true},
		Dimension: excelize.ChartDimension{
			Width:  600,
			Height: 400,
		},
	})
}

func addSummarySheet(f *excelize.File, records []models.Temperature) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	summary := TemperatureSummary(records)
	rows := [][]interface{}{
		{"Report Generated", time.Now().UTC().Format(timeLayout)},
		{"Total Readings", len(records)},
		{"Distinct Days", summary.Days},
	}
	if len(records) > 0 {
		rows = append(rows,
			[]interface{}{"Time Range", fmt.Sprintf("%s to %s",
				summary.First.Format(timeLayout), summary.Last.Format(timeLayout))},
			[]interface{}{"Temperature Range", fmt.Sprintf("%.2f°C - %.2f°C", summary.Min, summary.Max)},
			[]interface{}{"Average", fmt.Sprintf("%.2f°C", summary.Average)},
		)
	}

	for i, row := range rows {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}
	return nil
}

type Summary struct {
	Min, Max, Average float64
	First, Last       time.Time
	Days              int
}

// TemperatureSummary computes range, mean and distinct UTC days of the readings.
func TemperatureSummary(records []models.Temperature) Summary {
	var s Summary
	if len(records) == 0 {
		return s
	}

	days := make(map[string]struct{})
	s.Min, s.Max = records[0].Temperature, records[0].Temperature
	s.First, s.Last = records[0].Date.UTC(), records[0].Date.UTC()

	var sum float64
	for _, r := range records {
		sum += r.Temperature
		if r.Temperature < s.Min {
			s.Min = r.Temperature
		}
		if r.Temperature > s.Max {
			s.Max = r.Temperature
		}
		date := r.Date.UTC()
		if date.Before(s.First) {
			s.First = date
		}
		if date.After(s.Last) {
			s.Last = date
		}
		days[date.Format("2006-01-02")] = struct{}{}
	}

	s.Average = sum / float64(len(records))
	s.Days = len(days)
	return s
}

func conditionalFill(f *excelize.File, color string) *int {
	style, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil
	}
	return &style
}
