package ordering

import (
	"context"
	"testing"
	"time"

	"joshemfoods/internal/domain"
	"joshemfoods/internal/schedule"
	"joshemfoods/internal/sitestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	menu    []domain.MenuItem
	content domain.SiteContent
	orders  []domain.Order

	saveResult sitestore.SaveResult
	saved      [][]domain.Order
}

func (f *fakeStore) Menu(context.Context) []domain.MenuItem { return f.menu }

func (f *fakeStore) SiteContent(context.Context) domain.SiteContent {
	return domain.MergeContentWithDefaults(f.content)
}

func (f *fakeStore) Orders(context.Context) []domain.Order { return f.orders }

func (f *fakeStore) SaveOrders(_ context.Context, orders []domain.Order) sitestore.SaveResult {
	f.saved = append(f.saved, orders)
	return f.saveResult
}

var _ SiteStore = (*fakeStore)(nil)

func testMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: "1", Name: "Chicken Adobo", Prices: domain.Prices{Small: 10, Large: 15}, Visible: true},
		{ID: "2", Name: "Sinigang", Prices: domain.Prices{Small: 0, Large: 16}, Visible: true},
		{ID: "3", Name: "Retired Dish", Prices: domain.Prices{Small: 5, Large: 8}, Visible: false},
	}
}

func newTestService(store *fakeStore, now time.Time) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return now }
	return svc
}

func TestPlaceOrder(t *testing.T) {
	now := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local)
	okPickup := "2026-09-10T14:00"

	tests := []struct {
		name        string
		sub         Submission
		expectedErr error
	}{
		{
			name: "happy_path",
			sub: Submission{
				CustomerName: "Maria Santos",
				PickupTime:   okPickup,
				Lines:        []CartLine{{ItemID: "1", Size: domain.SizeLarge, Quantity: 2}},
			},
		},
		{
			name:        "empty_cart",
			sub:         Submission{CustomerName: "Maria", PickupTime: okPickup},
			expectedErr: ErrEmptyCart,
		},
		{
			name: "missing_name",
			sub: Submission{
				PickupTime: okPickup,
				Lines:      []CartLine{{ItemID: "1", Size: domain.SizeSmall}},
			},
			expectedErr: ErrNameRequired,
		},
		{
			name: "pickup_inside_lead_time",
			sub: Submission{
				CustomerName: "Maria",
				PickupTime:   "2026-09-10T11:00",
				Lines:        []CartLine{{ItemID: "1", Size: domain.SizeSmall}},
			},
			expectedErr: schedule.ErrPickupTooSoon,
		},
		{
			name: "unknown_item",
			sub: Submission{
				CustomerName: "Maria",
				PickupTime:   okPickup,
				Lines:        []CartLine{{ItemID: "404", Size: domain.SizeSmall}},
			},
			expectedErr: ErrUnknownItem,
		},
		{
			name: "hidden_item_rejected",
			sub: Submission{
				CustomerName: "Maria",
				PickupTime:   okPickup,
				Lines:        []CartLine{{ItemID: "3", Size: domain.SizeSmall}},
			},
			expectedErr: ErrUnknownItem,
		},
		{
			name: "size_not_offered",
			sub: Submission{
				CustomerName: "Maria",
				PickupTime:   okPickup,
				Lines:        []CartLine{{ItemID: "2", Size: domain.SizeSmall}},
			},
			expectedErr: ErrSizeNotOffered,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := &fakeStore{menu: testMenu(), saveResult: sitestore.SaveResult{Saved: true, Synced: true}}
			svc := newTestService(store, now)

			order, err := svc.PlaceOrder(context.Background(), testCase.sub)
			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
				assert.Empty(t, store.saved, "nothing may be written on a rejected submission")
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, order.ID)
			assert.Equal(t, domain.StatusPending, order.Status)
			assert.Equal(t, 30.0, order.Total)
			require.Len(t, store.saved, 1)
			require.Len(t, store.saved[0], 1)
			assert.Equal(t, order.ID, store.saved[0][0].ID)
		})
	}
}

func TestPlaceOrderDenormalizesNameAndPrice(t *testing.T) {
	store := &fakeStore{menu: testMenu(), saveResult: sitestore.SaveResult{Saved: true, Synced: true}}
	svc := newTestService(store, time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local))

	order, err := svc.PlaceOrder(context.Background(), Submission{
		CustomerName: "Maria",
		PickupTime:   "2026-09-10T14:00",
		Lines:        []CartLine{{ItemID: "1", Size: domain.SizeSmall, Quantity: 0}},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	line := order.Items[0]
	assert.Equal(t, "Chicken Adobo", line.Name)
	assert.Equal(t, 10.0, line.Price)
	assert.Equal(t, 1, line.Quantity, "quantity below one is clamped")
	assert.Equal(t, 10.0, order.Total)
}

func TestPlaceOrderAppendsToExistingOrders(t *testing.T) {
	store := &fakeStore{
		menu:       testMenu(),
		orders:     []domain.Order{{ID: "ord-old", Status: domain.StatusConfirmed}},
		saveResult: sitestore.SaveResult{Saved: true, Synced: true},
	}
	svc := newTestService(store, time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local))

	_, err := svc.PlaceOrder(context.Background(), Submission{
		CustomerName: "Maria",
		PickupTime:   "2026-09-10T14:00",
		Lines:        []CartLine{{ItemID: "1", Size: domain.SizeLarge}},
	})
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	require.Len(t, store.saved[0], 2)
	assert.Equal(t, "ord-old", store.saved[0][0].ID)
}

func TestPlaceOrderSavedButNotSynced(t *testing.T) {
	store := &fakeStore{menu: testMenu(), saveResult: sitestore.SaveResult{Saved: true, Synced: false}}
	svc := newTestService(store, time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local))

	order, err := svc.PlaceOrder(context.Background(), Submission{
		CustomerName: "Maria",
		PickupTime:   "2026-09-10T14:00",
		Lines:        []CartLine{{ItemID: "1", Size: domain.SizeLarge}},
	})

	assert.ErrorIs(t, err, ErrNotSynced)
	assert.NotEmpty(t, order.ID, "the locally kept order is still returned")
}

func TestPlaceOrderLocalSaveFailure(t *testing.T) {
	store := &fakeStore{menu: testMenu(), saveResult: sitestore.SaveResult{}}
	svc := newTestService(store, time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local))

	_, err := svc.PlaceOrder(context.Background(), Submission{
		CustomerName: "Maria",
		PickupTime:   "2026-09-10T14:00",
		Lines:        []CartLine{{ItemID: "1", Size: domain.SizeLarge}},
	})
	assert.ErrorIs(t, err, ErrLocalSave)
}

func TestPlaceOrderUsesConfiguredLeadTime(t *testing.T) {
	store := &fakeStore{
		menu:       testMenu(),
		content:    domain.SiteContent{Settings: &domain.Settings{MinPrepTime: 6}},
		saveResult: sitestore.SaveResult{Saved: true, Synced: true},
	}
	svc := newTestService(store, time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local))

	_, err := svc.PlaceOrder(context.Background(), Submission{
		CustomerName: "Maria",
		PickupTime:   "2026-09-10T14:00",
		Lines:        []CartLine{{ItemID: "1", Size: domain.SizeLarge}},
	})
	assert.ErrorIs(t, err, schedule.ErrPickupTooSoon)
}

func TestSetStatus(t *testing.T) {
	store := &fakeStore{
		orders: []domain.Order{
			{ID: "ord-1", Status: domain.StatusPending},
			{ID: "ord-2", Status: domain.StatusPending},
		},
		saveResult: sitestore.SaveResult{Saved: true, Synced: true},
	}
	svc := NewService(store)

	result, err := svc.SetStatus(context.Background(), "ord-2", domain.StatusReady)
	require.NoError(t, err)
	assert.True(t, result.Synced)

	require.Len(t, store.saved, 1)
	assert.Equal(t, domain.StatusPending, store.saved[0][0].Status)
	assert.Equal(t, domain.StatusReady, store.saved[0][1].Status)
}

func TestSetStatusUnknownOrder(t *testing.T) {
	store := &fakeStore{saveResult: sitestore.SaveResult{Saved: true, Synced: true}}
	svc := NewService(store)

	_, err := svc.SetStatus(context.Background(), "missing", domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Empty(t, store.saved)
}
