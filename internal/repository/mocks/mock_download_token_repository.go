package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docvault/internal/model"
)

type MockDownloadTokenRepository struct {
	mock.Mock
}

func (m *MockDownloadTokenRepository) Create(ctx context.Context, token *model.DownloadToken) (*model.DownloadToken, error) {
	args := m.Called(ctx, token)
	if f, ok := args.Get(0).(func(context.Context, *model.DownloadToken) *model.DownloadToken); ok {
		return f(ctx, token), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DownloadToken), args.Error(1)
}

func (m *MockDownloadTokenRepository) FindValidToken(ctx context.Context, token string) (*model.DownloadToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DownloadToken), args.Error(1)
}

func (m *MockDownloadTokenRepository) MarkUsed(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
