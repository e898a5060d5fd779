package services

import (
	"context"
	"fmt"

	"seatwell/internal/status"
	"seatwell/internal/store"
	"seatwell/models"
)

// TransactionService is read only; transactions are created by purchases.
type TransactionService struct {
	store *store.Store
}

func NewTransactionService(s *store.Store) *TransactionService {
	return &TransactionService{store: s}
}

func (s *TransactionService) List(ctx context.Context) []models.Transaction {
	return s.store.AllTransactions()
}

func (s *TransactionService) Get(ctx context.Context, id int) (models.Transaction, error) {
	tx, ok := s.store.GetTransaction(id)
	if !ok {
		return models.Transaction{}, fmt.Errorf("transaction %d: %w", id, status.ErrNotFound)
	}
	return tx, nil
}
