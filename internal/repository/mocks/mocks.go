// Package mocks provides testify mocks for the climb repositories.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tmorrell/cruxlog/internal/domain/climb"
)

// LogRepository is a mock for climb.LogRepository.
type LogRepository struct {
	mock.Mock
}

func (m *LogRepository) Create(ctx context.Context, log *climb.Log) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *LogRepository) Get(ctx context.Context, id string) (*climb.Log, error) {
	args := m.Called(ctx, id)
	if log, ok := args.Get(0).(*climb.Log); ok {
		return log, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LogRepository) Update(ctx context.Context, log *climb.Log) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *LogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *LogRepository) List(ctx context.Context, opts climb.ListOptions) (*climb.ListResult, error) {
	args := m.Called(ctx, opts)
	if result, ok := args.Get(0).(*climb.ListResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

// ImageRepository is a mock for climb.ImageRepository.
type ImageRepository struct {
	mock.Mock
}

func (m *ImageRepository) Put(ctx context.Context, img *climb.Image) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *ImageRepository) Get(ctx context.Context, logID string) (*climb.Image, error) {
	args := m.Called(ctx, logID)
	if img, ok := args.Get(0).(*climb.Image); ok {
		return img, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ImageRepository) Delete(ctx context.Context, logID string) error {
	args := m.Called(ctx, logID)
	return args.Error(0)
}

// StatsRepository is a mock for climb.StatsRepository.
type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) Stats(ctx context.Context) (*climb.Stats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*climb.Stats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
