package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// Collection names as they appear in the remote document and the local cache.
const (
	CollectionMenu         = "menu"
	CollectionContent      = "content"
	CollectionTestimonials = "testimonials"
	CollectionOrders       = "orders"
)

type Category string

const (
	CategoryMain      Category = "Main"
	CategoryAppetizer Category = "Appetizer"
	CategoryDessert   Category = "Dessert"
	CategoryDrinks    Category = "Drinks"
)

// Prices holds the two portion prices. A price <= 0 means the item is not
// offered in that size.
type Prices struct {
	Small float64 `json:"small"`
	Large float64 `json:"large"`
}

type MenuItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Prices         Prices   `json:"prices"`
	Category       Category `json:"category"`
	Image          string   `json:"image"`
	Visible        bool     `json:"visible"`
	IsDailySpecial bool     `json:"isDailySpecial"`
}

// Orderable reports whether at least one size has a positive price.
func (m MenuItem) Orderable() bool {
	return m.Prices.Small > 0 || m.Prices.Large > 0
}

// PriceFor returns the unit price for a size, or 0 when the size is not offered.
func (m MenuItem) PriceFor(size string) float64 {
	switch size {
	case SizeSmall:
		return m.Prices.Small
	case SizeLarge:
		return m.Prices.Large
	}
	return 0
}

type HeroImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Visible bool   `json:"visible"`
}

// Hero images keep their slice order; the carousel renders them as stored.
type Hero struct {
	Images []HeroImage `json:"images"`
}

type About struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	StoryTitle string `json:"storyTitle"`
	StoryText  string `json:"storyText"`
	StoryImage string `json:"storyImage"`
}

type Hours struct {
	MonFri string `json:"monFri"`
	Sat    string `json:"sat"`
	Sun    string `json:"sun"`
}

type Contact struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Hours   Hours  `json:"hours"`
}

type Socials struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
}

type Settings struct {
	// Minimum lead time between placing an order and picking it up, in hours.
	MinPrepTime int `json:"minPrepTime"`
}

// SiteContent is a single aggregate document. Sub-records are pointers so a
// stored document written before the schema grew (no socials, no settings)
// can be told apart from one that set them explicitly.
type SiteContent struct {
	Hero     *Hero     `json:"hero,omitempty"`
	About    *About    `json:"about,omitempty"`
	Contact  *Contact  `json:"contact,omitempty"`
	Socials  *Socials  `json:"socials,omitempty"`
	Settings *Settings `json:"settings,omitempty"`
}

// MinPrepHours returns the configured lead time, defaulting when settings are
// missing from an older document.
func (c SiteContent) MinPrepHours() int {
	if c.Settings == nil {
		return DefaultMinPrepHours
	}
	if c.Settings.MinPrepTime < 0 {
		return 0
	}
	return c.Settings.MinPrepTime
}

// FlexID accepts both JSON strings and numbers. Early testimonials were
// stored with numeric ids, newer ones use strings.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(id))
}

type Testimonial struct {
	ID     FlexID `json:"id"`
	Name   string `json:"name"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

const (
	SizeSmall = "small"
	SizeLarge = "large"
)

// OrderItem captures the item name and unit price at order time; they are
// never re-derived from the current menu.
type OrderItem struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	PickupTime   string      `json:"pickupTime"`
	Allergens    string      `json:"allergens"`
	Comments     string      `json:"comments"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    string      `json:"createdAt"`
}

// Archived reports whether the order left the active set. The partition is a
// pure function of status, never stored.
func (o Order) Archived() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

// PickupAt parses the stored pickup timestamp. The public form submits the
// browser's datetime-local format, admin tooling writes RFC 3339; both are
// accepted.
func (o Order) PickupAt() (time.Time, bool) {
	return ParseTimestamp(o.PickupTime)
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func ParseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
