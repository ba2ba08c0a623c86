package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"h2grid/internal/apperr"
)

func ptr(v float64) *float64 { return &v }

func TestReadingService_RangeChecks(t *testing.T) {
	store := &fakeReadingStore{}
	svc := NewReadingService(store, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateWind(ctx, WindReadingRequest{Latitude: ptr(91), Longitude: ptr(10), Speed: ptr(4)})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "latitude")

	_, err = svc.CreateSolar(ctx, SolarReadingRequest{Latitude: ptr(10), Longitude: ptr(-181), Unit: ptr(5)})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.CreateSolar(ctx, SolarReadingRequest{Latitude: ptr(10), Longitude: ptr(10)})
	assert.True(t, apperr.IsValidation(err))

	// Zero is a real coordinate.
	w, err := svc.CreateWind(ctx, WindReadingRequest{Latitude: ptr(0), Longitude: ptr(0), Speed: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, w.Speed)
	assert.Len(t, store.wind, 1)
}

func TestReadingService_ImportCSV(t *testing.T) {
	store := &fakeReadingStore{}
	svc := NewReadingService(store, zap.NewNop())

	data := strings.Join([]string{
		"lat,lon,speed,Insolation",
		"22.5,70.1,6.2,5.4",
		"95,70.1,6.2,5.4",
		"23.0,71.0,n/a,4.9",
	}, "\n")

	res, err := svc.ImportCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 1, res.Wind)
	assert.Equal(t, 2, res.Solar)
	assert.Equal(t, 3, res.Skipped)
	assert.Len(t, store.wind, 1)
	assert.Len(t, store.solar, 2)
}

func TestReadingService_ImportCSVHeader(t *testing.T) {
	svc := NewReadingService(&fakeReadingStore{}, zap.NewNop())

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("lat,lon,speed\n1,2,3\n"))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "insolation")

	_, err = svc.ImportCSV(context.Background(), strings.NewReader(""))
	assert.True(t, apperr.IsValidation(err))
}
