package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"joshemfoods/internal/domain"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// FileDriver keeps the site document in a single pretty-printed JSON file,
// the layout the platform launched with.
type FileDriver struct {
	path string
}

func NewFileDriver(path string) (*FileDriver, error) {
	if path == "" {
		return nil, errors.New("data file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}
	return &FileDriver{path: path}, nil
}

// Load reads the document, seeding the file on first use. A corrupt file is
// logged and replaced by the seed rather than taking the service down.
func (d *FileDriver) Load() (Document, error) {
	raw, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		seed := Seed()
		if err := d.Save(seed); err != nil {
			return Document{}, err
		}
		return seed, nil
	}
	if err != nil {
		return Document{}, errors.Wrap(err, "read data file")
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.WithError(err).Warnf("Corrupt data file %s, reseeding", d.path)
		seed := Seed()
		if err := d.Save(seed); err != nil {
			return Document{}, err
		}
		return seed, nil
	}
	normalize(&doc)
	return doc, nil
}

func (d *FileDriver) Save(doc Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode document")
	}

	// Write to a sibling temp file and rename so a crash mid-write cannot
	// leave a truncated database behind.
	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return errors.Wrap(err, "write data file")
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return errors.Wrap(err, "replace data file")
	}
	return nil
}

// normalize fills nil collections so handlers always serialize arrays, never
// null.
func normalize(doc *Document) {
	if doc.Menu == nil {
		doc.Menu = []domain.MenuItem{}
	}
	if doc.Testimonials == nil {
		doc.Testimonials = []domain.Testimonial{}
	}
	if doc.Orders == nil {
		doc.Orders = []domain.Order{}
	}
}
