package fulfillment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/fulfillment/internal/domain"
)

func TestNormalDecrementsStockWhenAvailable(t *testing.T) {
	product := domain.Product{
		ID: 1, Name: "RJ45 Cable", Type: domain.ProductTypeNormal,
		Available: 2, LeadTime: 15,
	}
	repo := newMemRepo(product)
	notifier := &notifierRecorder{}
	h := NewNormalHandler(repo, notifier)

	require.NoError(t, h.ProcessOrder(context.Background(), &product))

	persisted := repo.products[1]
	assert.Equal(t, 1, persisted.Available)
	assert.Equal(t, 15, persisted.LeadTime)
	assert.Empty(t, notifier.delays)
	assert.Empty(t, notifier.outOfStocks)
	assert.Empty(t, notifier.expirations)
}

func TestNormalSendsDelayWhenOutOfStock(t *testing.T) {
	product := domain.Product{
		ID: 2, Name: "USB Dongle", Type: domain.ProductTypeNormal,
		Available: 0, LeadTime: 7,
	}
	repo := newMemRepo(product)
	notifier := &notifierRecorder{}
	h := NewNormalHandler(repo, notifier)

	require.NoError(t, h.ProcessOrder(context.Background(), &product))

	persisted := repo.products[2]
	assert.Equal(t, 0, persisted.Available)
	assert.Equal(t, 7, persisted.LeadTime)
	require.Len(t, notifier.delays, 1)
	assert.Equal(t, delayCall{leadTime: 7, name: "USB Dongle"}, notifier.delays[0])
}

func TestNormalNoStockNoLeadTimeDoesNothing(t *testing.T) {
	product := domain.Product{
		ID: 3, Name: "Legacy Adapter", Type: domain.ProductTypeNormal,
		Available: 0, LeadTime: 0,
	}
	repo := newMemRepo(product)
	notifier := &notifierRecorder{}
	h := NewNormalHandler(repo, notifier)

	require.NoError(t, h.ProcessOrder(context.Background(), &product))

	assert.Zero(t, repo.persistCalls)
	assert.Empty(t, notifier.delays)
	assert.Empty(t, notifier.outOfStocks)
}

func TestNormalPersistsBeforeDelayNotification(t *testing.T) {
	product := domain.Product{
		ID: 4, Name: "Patch Panel", Type: domain.ProductTypeNormal,
		Available: 0, LeadTime: 3,
	}
	repo := newMemRepo(product)
	repo.persistErr = assert.AnError
	notifier := &notifierRecorder{}
	h := NewNormalHandler(repo, notifier)

	err := h.ProcessOrder(context.Background(), &product)

	require.Error(t, err)
	// persistence failed, so no notification may have been emitted
	assert.Empty(t, notifier.delays)
}
