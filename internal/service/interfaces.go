package service

import (
	"context"

	"joshemfoods/internal/domain"
	"joshemfoods/internal/storage"
)

type SiteServiceInterface interface {
	Data() (storage.Document, error)
	ReplaceMenu(ctx context.Context, items []domain.MenuItem) error
	ReplaceContent(ctx context.Context, content domain.SiteContent) error
	ReplaceTestimonials(ctx context.Context, items []domain.Testimonial) error
	ReplaceOrders(ctx context.Context, orders []domain.Order) error
	VerifyPassword(password string) (bool, error)
	UpdatePassword(password string) error
	Order(id string) (domain.Order, error)
	PickupQRCode(id string) ([]byte, error)
}

type UpdatePublisher interface {
	PublishUpdate(ctx context.Context, event storage.UpdateEvent) error
}

var _ SiteServiceInterface = (*SiteService)(nil)
var _ UpdatePublisher = (*storage.KafkaPublisher)(nil)
