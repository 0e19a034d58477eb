package ordering

import (
	"context"

	"joshemfoods/internal/domain"
	"joshemfoods/internal/sitestore"
)

// SiteStore is the slice of the client store the ordering flow needs.
type SiteStore interface {
	Menu(ctx context.Context) []domain.MenuItem
	SiteContent(ctx context.Context) domain.SiteContent
	Orders(ctx context.Context) []domain.Order
	SaveOrders(ctx context.Context, orders []domain.Order) sitestore.SaveResult
}

var _ SiteStore = (*sitestore.Store)(nil)
