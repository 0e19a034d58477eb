package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"joshemfoods/internal/domain"
	"joshemfoods/internal/storage"
)

var ErrOrderNotFound = errors.New("order not found")

// SiteService owns the authoritative site document. All writes are
// read-modify-write under one lock; the last writer wins, which is the
// documented consistency model for admin edits.
type SiteService struct {
	mu        sync.Mutex
	driver    storage.Driver
	publisher UpdatePublisher
}

func NewSiteService(driver storage.Driver, publisher UpdatePublisher) *SiteService {
	return &SiteService{
		driver:    driver,
		publisher: publisher,
	}
}

// Data returns the document with the admin credential stripped. The
// credential never leaves the service through the read-all path.
func (s *SiteService) Data() (storage.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.driver.Load()
	if err != nil {
		return storage.Document{}, err
	}
	doc.Auth = nil
	return doc, nil
}

func (s *SiteService) ReplaceMenu(ctx context.Context, items []domain.MenuItem) error {
	return s.replace(ctx, domain.CollectionMenu, len(items), func(doc *storage.Document) {
		doc.Menu = items
	})
}

func (s *SiteService) ReplaceContent(ctx context.Context, content domain.SiteContent) error {
	return s.replace(ctx, domain.CollectionContent, 1, func(doc *storage.Document) {
		doc.Content = &content
	})
}

func (s *SiteService) ReplaceTestimonials(ctx context.Context, items []domain.Testimonial) error {
	return s.replace(ctx, domain.CollectionTestimonials, len(items), func(doc *storage.Document) {
		doc.Testimonials = items
	})
}

func (s *SiteService) ReplaceOrders(ctx context.Context, orders []domain.Order) error {
	return s.replace(ctx, domain.CollectionOrders, len(orders), func(doc *storage.Document) {
		doc.Orders = orders
	})
}

func (s *SiteService) replace(ctx context.Context, collection string, count int, apply func(*storage.Document)) error {
	s.mu.Lock()
	doc, err := s.driver.Load()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	apply(&doc)
	err = s.driver.Save(doc)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if s.publisher != nil {
		_ = s.publisher.PublishUpdate(ctx, storage.UpdateEvent{
			Type:       "collection_updated",
			Collection: collection,
			Count:      count,
			Timestamp:  time.Now(),
		})
	}

	return nil
}

func (s *SiteService) VerifyPassword(password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.driver.Load()
	if err != nil {
		return false, err
	}

	current := storage.BootstrapPassword
	if doc.Auth != nil && doc.Auth.Password != "" {
		current = doc.Auth.Password
	}
	return password == current, nil
}

func (s *SiteService) UpdatePassword(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.driver.Load()
	if err != nil {
		return err
	}
	doc.Auth = &storage.Auth{Password: password}
	return s.driver.Save(doc)
}

// Order looks up a single order for the pickup QR endpoint.
func (s *SiteService) Order(id string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.driver.Load()
	if err != nil {
		return domain.Order{}, err
	}
	for _, order := range doc.Orders {
		if order.ID == id {
			return order, nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}
