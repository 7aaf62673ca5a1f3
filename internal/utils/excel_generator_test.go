package utils

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"roomfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReadings() []models.Temperature {
	return []models.Temperature{
		{ID: 1, RoomID: 1, Temperature: 20.5, Date: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)},
		{ID: 2, RoomID: 1, Temperature: 35, Date: time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC)},
		{ID: 3, RoomID: 2, Temperature: 4.25, Date: time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC)},
	}
}

func TestWriteTemperatureCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemperatureCSV(&buf, sampleReadings()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"id", "room_id", "temperature", "date"}, rows[0])
	assert.Equal(t, []string{"1", "1", "20.50", "2024-01-02 08:00:00"}, rows[1])
	assert.Equal(t, []string{"3", "2", "4.25", "2024-01-03 09:30:00"}, rows[3])
}

func TestCreateTemperatureExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CreateTemperatureExcel(&buf, sampleReadings()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{readingsSheet, summarySheet}, f.GetSheetList())

	header, err := f.GetCellValue(readingsSheet, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Temperature (°C)", header)

	date, err := f.GetCellValue(readingsSheet, "D4")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03 09:30:00", date)

	total, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", total)
}

func TestCreateTemperatureExcel_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CreateTemperatureExcel(&buf, nil))
	assert.NotZero(t, buf.Len())
}

func TestTemperatureSummary(t *testing.T) {
	s := TemperatureSummary(sampleReadings())

	assert.Equal(t, 4.25, s.Min)
	assert.Equal(t, 35.0, s.Max)
	assert.InDelta(t, 19.9166, s.Average, 1e-3)
	assert.Equal(t, 2, s.Days)
	assert.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), s.First)
	assert.Equal(t, time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC), s.Last)

	assert.Equal(t, Summary{}, TemperatureSummary(nil))
}
