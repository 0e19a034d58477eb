// Package ordering turns a cart into a stored order. It is the main consumer
// of the client store and enforces the lead-time floor before anything is
// written.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"joshemfoods/internal/domain"
	"joshemfoods/internal/schedule"
	"joshemfoods/internal/sitestore"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart      = errors.New("order must contain at least one item")
	ErrUnknownItem    = errors.New("item is not on the menu")
	ErrSizeNotOffered = errors.New("item is not offered in that size")
	ErrNameRequired   = errors.New("customer name is required")
	ErrLocalSave      = errors.New("order could not be saved locally")

	// ErrNotSynced is a hard failure by design: the order is kept locally,
	// but the customer must know the kitchen may not have seen it.
	ErrNotSynced = errors.New("order saved locally but the server could not be reached")

	ErrOrderNotFound = errors.New("order not found")
)

// CartLine references a menu item by id; name and price are denormalized at
// submission time and never re-derived afterwards.
type CartLine struct {
	ItemID   string
	Size     string
	Quantity int
}

type Submission struct {
	CustomerName string
	Email        string
	Phone        string
	PickupTime   string
	Allergens    string
	Comments     string
	Lines        []CartLine
}

type Service struct {
	store SiteStore
	now   func() time.Time
}

func NewService(store SiteStore) *Service {
	return &Service{store: store, now: time.Now}
}

// PlaceOrder validates the submission, prices the cart against the current
// menu, enforces the lead-time floor, and appends the order to the stored
// list. Validation happens strictly before any write.
func (s *Service) PlaceOrder(ctx context.Context, sub Submission) (domain.Order, error) {
	if len(sub.Lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	if sub.CustomerName == "" {
		return domain.Order{}, ErrNameRequired
	}

	content := s.store.SiteContent(ctx)
	now := s.now()
	if err := schedule.CheckPickupTime(sub.PickupTime, now, content.MinPrepHours()); err != nil {
		return domain.Order{}, err
	}

	items, total, err := s.priceCart(ctx, sub.Lines)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:           "ord-" + uuid.NewString(),
		CustomerName: sub.CustomerName,
		Email:        sub.Email,
		Phone:        sub.Phone,
		PickupTime:   sub.PickupTime,
		Allergens:    sub.Allergens,
		Comments:     sub.Comments,
		Items:        items,
		Total:        total,
		Status:       domain.StatusPending,
		CreatedAt:    now.Format(time.RFC3339),
	}

	existing := s.store.Orders(ctx)
	result := s.store.SaveOrders(ctx, append(existing, order))
	if !result.Saved {
		return domain.Order{}, ErrLocalSave
	}
	if !result.Synced {
		return order, ErrNotSynced
	}
	return order, nil
}

func (s *Service) priceCart(ctx context.Context, lines []CartLine) ([]domain.OrderItem, float64, error) {
	menu := s.store.Menu(ctx)
	byID := make(map[string]domain.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}

	items := make([]domain.OrderItem, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		item, ok := byID[line.ItemID]
		if !ok || !item.Visible {
			return nil, 0, fmt.Errorf("%w: %s", ErrUnknownItem, line.ItemID)
		}
		price := item.PriceFor(line.Size)
		if price <= 0 {
			return nil, 0, fmt.Errorf("%w: %s (%s)", ErrSizeNotOffered, item.Name, line.Size)
		}
		quantity := line.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, domain.OrderItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Size:     line.Size,
			Quantity: quantity,
			Price:    price,
		})
		total += price * float64(quantity)
	}
	return items, total, nil
}

// SetStatus applies an admin status transition. An unsynced save is reported
// through the returned result, not as an error; admin edits tolerate being
// offline.
func (s *Service) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (sitestore.SaveResult, error) {
	orders := s.store.Orders(ctx)
	found := false
	for i := range orders {
		if orders[i].ID == orderID {
			orders[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return sitestore.SaveResult{}, ErrOrderNotFound
	}

	return s.store.SaveOrders(ctx, orders), nil
}
