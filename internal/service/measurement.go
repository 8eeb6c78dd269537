package service

import (
	"context"
	"net/url"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// MeasurementService handles body measurements
type MeasurementService struct {
	api *apiclient.Client
}

// NewMeasurementService creates a new MeasurementService instance
func NewMeasurementService(api *apiclient.Client) *MeasurementService {
	return &MeasurementService{api: api}
}

// MyHistory returns the caller's measurements in backend order
func (s *MeasurementService) MyHistory(ctx context.Context, creds apiclient.Credentials) ([]types.Measurement, error) {
	var history []types.Measurement
	if err := s.api.Get(ctx, creds, "/measurements", nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// UserHistory returns the measurements of a member, for their trainer or admin
func (s *MeasurementService) UserHistory(ctx context.Context, creds apiclient.Credentials, userID string) ([]types.Measurement, error) {
	var history []types.Measurement
	if err := s.api.Get(ctx, creds, "/measurements/user/"+url.PathEscape(userID), nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// MonthlyProgress returns the backend's own monthly aggregate
func (s *MeasurementService) MonthlyProgress(ctx context.Context, creds apiclient.Credentials) ([]types.MonthlyStats, error) {
	var stats []types.MonthlyStats
	if err := s.api.Get(ctx, creds, "/measurements/progress", nil, &stats); err != nil {
		return nil, err
	}
	for i := range stats {
		stats[i].HasData = stats[i].Weight > 0 || stats[i].BodyFat > 0
	}
	return stats, nil
}

// Create records a measurement. The backend derives body fat and the energy
// figures and returns the stored record.
func (s *MeasurementService) Create(ctx context.Context, creds apiclient.Credentials, req *types.MeasurementRequest) (*types.Measurement, error) {
	var m types.Measurement
	if err := s.api.Post(ctx, creds, "/measurements", req, &m); err != nil {
		return nil, err
	}
	return entityOrNil(&m, m.ID), nil
}
