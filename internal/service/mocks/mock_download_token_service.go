package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docvault/internal/service"
)

type MockDownloadTokenService struct {
	mock.Mock
}

func (m *MockDownloadTokenService) Issue(ctx context.Context, documentID int64) (*service.DownloadLink, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadLink), args.Error(1)
}

func (m *MockDownloadTokenService) Consume(ctx context.Context, token string) (*service.DownloadContent, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadContent), args.Error(1)
}
