package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"joshemfoods/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// PostgresDriver stores each collection as a jsonb document keyed by name.
type PostgresDriver struct {
	DB *sqlx.DB
}

func NewPostgresDriver(db *sqlx.DB) (*PostgresDriver, error) {
	d := &PostgresDriver{DB: db}
	if err := d.ensureSchema(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *PostgresDriver) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS site_documents (
			collection TEXT PRIMARY KEY,
			body JSONB NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := d.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}

	return nil
}

func (d *PostgresDriver) Load() (Document, error) {
	rows, err := d.DB.Query(`SELECT collection, body FROM site_documents`)
	if err != nil {
		return Document{}, errors.Wrap(err, "load site documents")
	}
	defer rows.Close()

	parts := map[string]json.RawMessage{}
	for rows.Next() {
		var collection string
		var body []byte
		if err := rows.Scan(&collection, &body); err != nil {
			continue
		}
		parts[collection] = body
	}

	if len(parts) == 0 {
		seed := Seed()
		if err := d.Save(seed); err != nil {
			return Document{}, err
		}
		return seed, nil
	}

	var doc Document
	decode(parts, "auth", &doc.Auth)
	decode(parts, domain.CollectionMenu, &doc.Menu)
	decode(parts, domain.CollectionContent, &doc.Content)
	decode(parts, domain.CollectionTestimonials, &doc.Testimonials)
	decode(parts, domain.CollectionOrders, &doc.Orders)
	normalize(&doc)
	return doc, nil
}

func (d *PostgresDriver) Save(doc Document) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return errors.Wrap(err, "begin save")
	}
	defer tx.Rollback()

	parts := map[string]interface{}{
		"auth":                        doc.Auth,
		domain.CollectionMenu:         doc.Menu,
		domain.CollectionContent:      doc.Content,
		domain.CollectionTestimonials: doc.Testimonials,
		domain.CollectionOrders:       doc.Orders,
	}
	for collection, value := range parts {
		body, err := json.Marshal(value)
		if err != nil {
			return errors.Wrapf(err, "encode %s", collection)
		}
		if err := upsert(tx, collection, body); err != nil {
			return err
		}
	}

	return errors.Wrap(tx.Commit(), "commit save")
}

func upsert(tx *sql.Tx, collection string, body []byte) error {
	_, err := tx.Exec(`
		INSERT INTO site_documents (collection, body)
		VALUES ($1, $2)
		ON CONFLICT (collection) DO UPDATE SET body = EXCLUDED.body
	`, collection, body)
	return errors.Wrapf(err, "upsert %s", collection)
}

func decode(parts map[string]json.RawMessage, collection string, dst interface{}) {
	raw, ok := parts[collection]
	if !ok {
		return
	}
	// A row that fails to decode reads as absent; the service falls back to
	// defaults for that collection.
	_ = json.Unmarshal(raw, dst)
}
