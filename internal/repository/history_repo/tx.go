package history_repo

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// memoryTxManager менеджер транзакций для журнала в памяти: просто вызывает fn
type memoryTxManager struct{}

func NewMemoryTxManager() trm.Manager {
	return memoryTxManager{}
}

func (memoryTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (memoryTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
