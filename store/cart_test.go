package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboarena/storefront-api/models"
)

func TestResolveOrCreateCartIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)

	second, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)
	assert.Equal(t, first.CartID, second.CartID)

	other, err := s.ResolveOrCreateCart("session-b")
	require.NoError(t, err)
	assert.NotEqual(t, first.CartID, other.CartID)
}

func TestResolveOrCreateCartSurvivesCreationRace(t *testing.T) {
	s := newTestStore(t)

	// Simulate losing the race: the winner's row lands between our read and
	// our insert.
	require.NoError(t, s.db.Create(&models.Cart{SessionID: "session-a"}).Error)

	cart, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)
	assert.Equal(t, "session-a", cart.SessionID)
	assert.EqualValues(t, 1, countRows(t, s, &models.Cart{}))
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	s := newTestStore(t)
	product := seedProduct(t, s, "servo", "10.00")
	cart, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)

	item, err := s.AddItem(cart, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = s.AddItem(cart, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	items, err := s.Items(cart)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItemRejectsUnknownProduct(t *testing.T) {
	s := newTestStore(t)
	cart, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)

	_, err = s.AddItem(cart, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	s := newTestStore(t)
	product := seedProduct(t, s, "servo", "10.00")
	cart, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)

	_, err = s.AddItem(cart, product.ID, 0)
	assert.Error(t, err)
	_, err = s.AddItem(cart, product.ID, -3)
	assert.Error(t, err)
}

func TestDecrementItem(t *testing.T) {
	s := newTestStore(t)
	product := seedProduct(t, s, "servo", "10.00")
	cart, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)

	_, err = s.AddItem(cart, product.ID, 2)
	require.NoError(t, err)

	// 2 -> 1: item stays
	require.NoError(t, s.DecrementItem(cart, product.ID))
	items, err := s.Items(cart)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	// 1 -> gone: row deleted, never persisted at zero
	require.NoError(t, s.DecrementItem(cart, product.ID))
	items, err = s.Items(cart)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, s.DecrementItem(cart, product.ID), ErrItemNotFound)
}

func TestRemoveItemDeletesRegardlessOfQuantity(t *testing.T) {
	s := newTestStore(t)
	product := seedProduct(t, s, "servo", "10.00")
	cart, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)

	_, err = s.AddItem(cart, product.ID, 7)
	require.NoError(t, err)

	require.NoError(t, s.RemoveItem(cart, product.ID))
	items, err := s.Items(cart)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, s.RemoveItem(cart, product.ID), ErrItemNotFound)
}

func TestConcurrentAddsDoNotLoseUpdates(t *testing.T) {
	s := newTestStore(t)
	product := seedProduct(t, s, "servo", "10.00")
	cart, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AddItem(cart, product.ID, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent AddItem failed: %v", err)
	}

	items, err := s.Items(cart)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Quantity)
}

func TestCartCount(t *testing.T) {
	s := newTestStore(t)
	servo := seedProduct(t, s, "servo", "10.00")
	esc := seedProduct(t, s, "esc", "5.00")

	count, err := s.CartCount("session-a")
	require.NoError(t, err)
	assert.Zero(t, count)

	cart, err := s.ResolveOrCreateCart("session-a")
	require.NoError(t, err)
	_, err = s.AddItem(cart, servo.ID, 2)
	require.NoError(t, err)
	_, err = s.AddItem(cart, esc.ID, 1)
	require.NoError(t, err)

	count, err = s.CartCount("session-a")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
