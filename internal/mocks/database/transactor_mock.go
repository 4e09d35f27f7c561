package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// TransactorMock 記錄 WithTx 呼叫並以 nil tx 執行 fn；設定了錯誤時直接回傳、不執行 fn
type TransactorMock struct {
	mock.Mock
}

func NewTransactorMock() *TransactorMock {
	return &TransactorMock{}
}

func (m *TransactorMock) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}
