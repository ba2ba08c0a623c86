package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"h2grid/internal/apperr"
	"h2grid/internal/models"
	"h2grid/internal/validation"
)

type ReadingStore interface {
	CreateWind(ctx context.Context, reading *models.WindReading) error
	CreateSolar(ctx context.Context, reading *models.SolarReading) error
	ListWind(ctx context.Context) ([]models.WindReading, error)
	ListSolar(ctx context.Context) ([]models.SolarReading, error)
	ImportBatch(ctx context.Context, wind []models.WindReading, solar []models.SolarReading) error
}

// Pointers let "required" tell a missing value apart from 0.
type WindReadingRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Speed     *float64 `json:"speed" binding:"required,gte=0"`
}

type SolarReadingRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Unit      *float64 `json:"unit" binding:"required,gte=0"`
}

// ImportResult counts what a CSV import stored.
type ImportResult struct {
	Rows    int `json:"rows"`
	Wind    int `json:"wind"`
	Solar   int `json:"solar"`
	Skipped int `json:"skipped"`
}

type ReadingService struct {
	store    ReadingStore
	validate *validator.Validate
	log      *zap.Logger
}

func NewReadingService(store ReadingStore, log *zap.Logger) *ReadingService {
	return &ReadingService{store: store, validate: validation.New(), log: log}
}

func (s *ReadingService) CreateWind(ctx context.Context, req WindReadingRequest) (*models.WindReading, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validation.Describe(err)
	}
	reading := &models.WindReading{Latitude: *req.Latitude, Longitude: *req.Longitude, Speed: *req.Speed}
	if err := s.store.CreateWind(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

func (s *ReadingService) CreateSolar(ctx context.Context, req SolarReadingRequest) (*models.SolarReading, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validation.Describe(err)
	}
	reading := &models.SolarReading{Latitude: *req.Latitude, Longitude: *req.Longitude, Unit: *req.Unit}
	if err := s.store.CreateSolar(ctx, reading); err != nil {
		return nil, err
	}
	return reading, nil
}

func (s *ReadingService) ListWind(ctx context.Context) ([]models.WindReading, error) {
	return s.store.ListWind(ctx)
}

func (s *ReadingService) ListSolar(ctx context.Context) ([]models.SolarReading, error) {
	return s.store.ListSolar(ctx)
}

// ImportCSV loads a dataset with lat, lon, speed and Insolation columns. Each
// row yields a wind reading and a solar reading; values that fail the range
// checks are skipped and logged. Nothing is stored if the batch insert fails.
func (s *ReadingService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.Validation("CSV file is empty")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols, err := csvColumns(header, "lat", "lon", "speed", "insolation")
	if err != nil {
		return nil, err
	}

	var (
		wind   []models.WindReading
		solar  []models.SolarReading
		result ImportResult
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", result.Rows+2, err)
		}
		result.Rows++
		line := result.Rows + 1

		lat, lon := csvFloat(record, cols["lat"]), csvFloat(record, cols["lon"])

		w := WindReadingRequest{Latitude: lat, Longitude: lon, Speed: csvFloat(record, cols["speed"])}
		if err := s.validate.Struct(w); err != nil {
			result.Skipped++
			s.log.Debug("skipping wind value", zap.Int("line", line), zap.Error(validation.Describe(err)))
		} else {
			wind = append(wind, models.WindReading{Latitude: *lat, Longitude: *lon, Speed: *w.Speed})
		}

		sol := SolarReadingRequest{Latitude: lat, Longitude: lon, Unit: csvFloat(record, cols["insolation"])}
		if err := s.validate.Struct(sol); err != nil {
			result.Skipped++
			s.log.Debug("skipping solar value", zap.Int("line", line), zap.Error(validation.Describe(err)))
		} else {
			solar = append(solar, models.SolarReading{Latitude: *lat, Longitude: *lon, Unit: *sol.Unit})
		}
	}

	if err := s.store.ImportBatch(ctx, wind, solar); err != nil {
		return nil, err
	}

	result.Wind, result.Solar = len(wind), len(solar)
	s.log.Info("readings imported",
		zap.Int("rows", result.Rows),
		zap.Int("wind", result.Wind),
		zap.Int("solar", result.Solar),
		zap.Int("skipped", result.Skipped),
	)
	return &result, nil
}

func csvColumns(header []string, names ...string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	out := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := index[name]
		if !ok {
			return nil, apperr.Validationf("CSV header is missing the %q column", name)
		}
		out[name] = i
	}
	return out, nil
}

func csvFloat(record []string, i int) *float64 {
	if i >= len(record) {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
	if err != nil {
		return nil
	}
	return &v
}
