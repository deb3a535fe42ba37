package mocks

import (
	"context"

	"schedupload/internal/form"
	"schedupload/internal/upload"

	"github.com/stretchr/testify/mock"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, p *form.Payload) (*upload.Result, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upload.Result), args.Error(1)
}
