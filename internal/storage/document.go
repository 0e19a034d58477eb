// Package storage holds the persistence drivers for the remote store
// service: the authoritative site document lives either in a JSON file on
// disk or in Postgres, and collection updates fan out through Kafka.
package storage

import (
	"joshemfoods/internal/domain"
)

// BootstrapPassword seeds the admin credential when the store starts empty.
const BootstrapPassword = "admin123"

type Auth struct {
	Password string `json:"password"`
}

// Document is the whole site database: one sub-document per collection plus
// the admin credential. The credential is stripped before the document ever
// leaves the service.
type Document struct {
	Auth         *Auth                `json:"auth,omitempty"`
	Menu         []domain.MenuItem    `json:"menu"`
	Content      *domain.SiteContent  `json:"content,omitempty"`
	Testimonials []domain.Testimonial `json:"testimonials"`
	Orders       []domain.Order       `json:"orders"`
}

// Seed returns the initial document written when no data exists yet.
func Seed() Document {
	content := domain.DefaultContent()
	return Document{
		Auth:         &Auth{Password: BootstrapPassword},
		Menu:         domain.DefaultMenu(),
		Content:      &content,
		Testimonials: domain.DefaultTestimonials(),
		Orders:       []domain.Order{},
	}
}

// Driver loads and stores the full site document. The service layer does
// read-modify-write under its own lock, so drivers stay dumb.
type Driver interface {
	Load() (Document, error)
	Save(Document) error
}
