package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"roomfeed/internal/models"
	"roomfeed/internal/repository"
	"roomfeed/internal/utils"
)

// DateLayout is the accepted format of the optional reading date. Month,
// day and hour may be given with or without a leading zero.
const DateLayout = "1-2-2006 15:04:05"

const defaultExportRange = 30 * 24 * time.Hour

type TemperatureService interface {
	AddTemperature(ctx context.Context, input AddTemperatureInput) (*models.Temperature, error)
	GetAverage(ctx context.Context) (*models.TemperatureStats, error)
	GetRoomAverage(ctx context.Context, roomID uint) (*models.TemperatureStats, error)
	ExportTemperatures(ctx context.Context, format string, from, to time.Time) (*ExportFile, error)
}

type AddTemperatureInput struct {
	RoomID      uint
	Temperature float64
	// Date uses DateLayout; empty or unparsable means now.
	Date string
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type temperatureService struct {
	repo      repository.TemperatureRepository
	roomRepo  repository.RoomRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewTemperatureService(
	repo repository.TemperatureRepository,
	roomRepo repository.RoomRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) TemperatureService {
	return &temperatureService{
		repo:      repo,
		roomRepo:  roomRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

func (s *temperatureService) AddTemperature(ctx context.Context, input AddTemperatureInput) (*models.Temperature, error) {
	reading := &models.Temperature{
		RoomID:      input.RoomID,
		Temperature: input.Temperature,
		Date:        s.readingDate(input.Date),
	}

	if err := s.repo.Create(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to add temperature: %w", fromRepository(err, ""))
	}

	if err := s.cacheRepo.Delete(ctx, repository.CacheKeyTemperatureAverage); err != nil {
		log.Printf("Failed to invalidate temperature average: %v", err)
	}

	return reading, nil
}

func (s *temperatureService) readingDate(raw string) time.Time {
	if raw != "" {
		if date, err := time.ParseInLocation(DateLayout, raw, time.UTC); err == nil {
			return date
		}
		log.Printf("Unparsable temperature date %q, using current time", raw)
	}
	return s.now().UTC()
}

func (s *temperatureService) GetAverage(ctx context.Context) (*models.TemperatureStats, error) {
	var cached models.TemperatureStats
	if found, err := s.cacheRepo.GetJSON(ctx, repository.CacheKeyTemperatureAverage, &cached); err != nil {
		log.Printf("Failed to read cached temperature average: %v", err)
	} else if found {
		return &cached, nil
	}

	agg, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute temperature average: %w", err)
	}

	stats := toStats(agg)
	if err := s.cacheRepo.SetJSON(ctx, repository.CacheKeyTemperatureAverage, stats, s.cacheTTL); err != nil {
		log.Printf("Failed to cache temperature average: %v", err)
	}

	return stats, nil
}

func (s *temperatureService) GetRoomAverage(ctx context.Context, roomID uint) (*models.TemperatureStats, error) {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, fromRepository(err, "Room not found")
	}

	agg, err := s.repo.GetRoomStats(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute room average: %w", err)
	}
	return toStats(agg), nil
}

func toStats(agg *repository.TemperatureAggregate) *models.TemperatureStats {
	stats := &models.TemperatureStats{Days: agg.Days}
	if agg.Average.Valid {
		avg := roundTo(agg.Average.Float64, 2)
		stats.Average = &avg
	}
	return stats
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	// halves go to the even neighbour, so 0.125 becomes 0.12
	return math.RoundToEven(value*factor) / factor
}

func (s *temperatureService) ExportTemperatures(ctx context.Context, format string, from, to time.Time) (*ExportFile, error) {
	if to.IsZero() {
		to = s.now().UTC()
	}
	if from.IsZero() {
		from = to.Add(-defaultExportRange)
	}
	if from.After(to) {
		return nil, &ValidationError{Field: "from", Reason: "must not be after to"}
	}

	records, err := s.repo.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get temperatures: %w", err)
	}

	timestamp := s.now().UTC().Format("20060102_150405")
	var buf bytes.Buffer

	switch format {
	case "csv":
		if err := utils.WriteTemperatureCSV(&buf, records); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("temperatures_%s.csv", timestamp),
			ContentType: "text/csv",
			Data:        buf.Bytes(),
		}, nil

	case "excel", "xlsx":
		if err := utils.CreateTemperatureExcel(&buf, records); err != nil {
			return nil, fmt.Errorf("failed to create Excel file: %w", err)
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("temperatures_%s.xlsx", timestamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        buf.Bytes(),
		}, nil

	case "json":
		data, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal temperatures: %w", err)
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("temperatures_%s.json", timestamp),
			ContentType: "application/json",
			Data:        data,
		}, nil

	default:
		return nil, &ValidationError{Field: "format", Reason: "must be one of csv, excel, json"}
	}
}
