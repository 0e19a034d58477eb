// Package sitestore is the client-side store every data-consuming view goes
// through. Reads go remote-first with the local cache as fallback, writes go
// cache-first with a best-effort remote push. The store never returns an
// error from a read and never blocks past the request budget: it degrades to
// the cache, then to the built-in defaults.
package sitestore

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"joshemfoods/internal/cache"
	"joshemfoods/internal/domain"

	log "github.com/sirupsen/logrus"
)

const DefaultTimeout = 1500 * time.Millisecond

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	BaseURL string
	Timeout time.Duration

	// TrustEmptyRemote makes an empty-but-successful remote response
	// authoritative, letting "delete everything" persist. Off by default: a
	// freshly seeded server racing back an empty document must not destroy
	// locally entered data.
	TrustEmptyRemote bool

	HTTPClient HTTPClient
}

type Store struct {
	baseURL          string
	timeout          time.Duration
	trustEmptyRemote bool
	client           HTTPClient
	cache            cache.Cache
}

func New(opts Options, localCache cache.Cache) *Store {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	return &Store{
		baseURL:          opts.BaseURL,
		timeout:          opts.Timeout,
		trustEmptyRemote: opts.TrustEmptyRemote,
		client:           opts.HTTPClient,
		cache:            localCache,
	}
}

// SaveResult distinguishes "the local view is consistent" from "the remote
// has it too".
type SaveResult struct {
	Saved  bool
	Synced bool
}

func cacheKey(collection string) string {
	return "joshem_" + collection + "_v2"
}

// Menu returns the menu collection. See Get semantics on get.
func (s *Store) Menu(ctx context.Context) []domain.MenuItem {
	raw := s.get(ctx, domain.CollectionMenu, listIsEmpty)
	var items []domain.MenuItem
	if raw != nil && json.Unmarshal(raw, &items) == nil && items != nil {
		return items
	}
	return domain.DefaultMenu()
}

func (s *Store) SaveMenu(ctx context.Context, items []domain.MenuItem) SaveResult {
	return s.save(ctx, domain.CollectionMenu, items)
}

// SiteContent returns the content aggregate, deep-merged over defaults so
// documents written before the schema grew keep working.
func (s *Store) SiteContent(ctx context.Context) domain.SiteContent {
	raw := s.get(ctx, domain.CollectionContent, objectNeverEmpty)
	var content domain.SiteContent
	if raw != nil && json.Unmarshal(raw, &content) == nil {
		return domain.MergeContentWithDefaults(content)
	}
	return domain.DefaultContent()
}

func (s *Store) SaveSiteContent(ctx context.Context, content domain.SiteContent) SaveResult {
	return s.save(ctx, domain.CollectionContent, content)
}

func (s *Store) Testimonials(ctx context.Context) []domain.Testimonial {
	raw := s.get(ctx, domain.CollectionTestimonials, listIsEmpty)
	var items []domain.Testimonial
	if raw != nil && json.Unmarshal(raw, &items) == nil && items != nil {
		return items
	}
	return domain.DefaultTestimonials()
}

func (s *Store) SaveTestimonials(ctx context.Context, items []domain.Testimonial) SaveResult {
	return s.save(ctx, domain.CollectionTestimonials, items)
}

func (s *Store) Orders(ctx context.Context) []domain.Order {
	raw := s.get(ctx, domain.CollectionOrders, listIsEmpty)
	var orders []domain.Order
	if raw != nil && json.Unmarshal(raw, &orders) == nil && orders != nil {
		return orders
	}
	return []domain.Order{}
}

func (s *Store) SaveOrders(ctx context.Context, orders []domain.Order) SaveResult {
	return s.save(ctx, domain.CollectionOrders, orders)
}

// get resolves one collection to raw JSON.
//
//  1. Read the cache synchronously; corrupt JSON reads as absent.
//  2. Fetch the remote read-all document within the request budget.
//  3. A non-empty remote value is authoritative: cache it, return it.
//  4. An empty remote value yields to a non-empty cache unless
//     TrustEmptyRemote is set.
//  5. On any remote failure return the cache, then nil (caller defaults).
//
// A read racing a previous save's remote push may observe the older remote
// value; consistency is eventual, not immediate.
func (s *Store) get(ctx context.Context, collection string, isEmpty func([]byte) bool) []byte {
	key := cacheKey(collection)
	cached, hasCached := s.cache.Get(key)
	if hasCached && !json.Valid(cached) {
		hasCached = false
	}

	body, status, err := s.request(ctx, http.MethodGet, "/api/data", nil)
	if err != nil {
		log.Infof("Sync ignored for %s (offline), using cache", collection)
	} else if status == http.StatusOK {
		if remote, ok := extractCollection(body, collection); ok {
			if isEmpty(remote) && !s.trustEmptyRemote && hasCached && !isEmpty(cached) {
				log.Infof("Empty remote %s ignored in favor of non-empty cache", collection)
				return cached
			}
			if err := s.cache.Set(key, remote); err != nil {
				log.WithError(err).Warnf("Cache write failed for %s", collection)
			}
			return remote
		}
	}

	if hasCached {
		return cached
	}
	return nil
}

// save writes the full snapshot to the cache first, then pushes it remotely.
// A failed push only downgrades Synced; the caller surfaces that as an
// offline indicator, not an error.
func (s *Store) save(ctx context.Context, collection string, value interface{}) SaveResult {
	raw, err := json.Marshal(value)
	if err != nil {
		log.WithError(err).Errorf("Encode failed for %s", collection)
		return SaveResult{}
	}

	result := SaveResult{}
	if err := s.cache.Set(cacheKey(collection), raw); err != nil {
		log.WithError(err).Warnf("Cache write failed for %s", collection)
	} else {
		result.Saved = true
	}

	_, status, err := s.request(ctx, http.MethodPost, "/api/"+collection, raw)
	if err != nil {
		log.Infof("Remote push failed for %s, local copy kept", collection)
		return result
	}
	result.Synced = status == http.StatusOK
	return result
}

// extractCollection pulls one sub-document out of the read-all response.
// Missing keys and JSON null both read as "nothing useful here".
func extractCollection(body []byte, collection string) ([]byte, bool) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, false
	}
	raw, ok := doc[collection]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

func listIsEmpty(raw []byte) bool {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return true
	}
	return len(items) == 0
}

// Content is a single aggregate; present means authoritative.
func objectNeverEmpty([]byte) bool { return false }
