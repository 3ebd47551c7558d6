package mocks

import (
	"context"

	"sicoobslip/internal/model"
	"sicoobslip/internal/sicoob"
	"github.com/stretchr/testify/mock"
)

type MockSlipService struct {
	mock.Mock
}

func (m *MockSlipService) Issue(ctx context.Context, agreement model.Agreement) (*model.Slip, error) {
	args := m.Called(ctx, agreement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Slip), args.Error(1)
}

func (m *MockSlipService) Parse(ctx context.Context, freeField string) (*sicoob.Fields, error) {
	args := m.Called(ctx, freeField)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sicoob.Fields), args.Error(1)
}

func (m *MockSlipService) Verify(ctx context.Context, freeField string) error {
	args := m.Called(ctx, freeField)
	return args.Error(0)
}
