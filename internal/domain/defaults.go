package domain

// DefaultMinPrepHours applies when a stored content document predates the
// settings sub-record.
const DefaultMinPrepHours = 2

// DefaultMenu returns the built-in sample menu used when neither the remote
// nor the local cache has data. Callers receive a fresh copy.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{
			ID:             "1",
			Name:           "Chicken Adobo",
			Description:    "The national dish. Chicken marinated in vinegar, soy sauce, garlic, and peppercorns, braised to savory perfection.",
			Prices:         Prices{Small: 10.99, Large: 15.99},
			Category:       CategoryMain,
			Image:          "https://images.unsplash.com/photo-1582878826629-29b7ad1cdc43?auto=format&fit=crop&q=80&w=800",
			Visible:        true,
			IsDailySpecial: true,
		},
		{
			ID:          "2",
			Name:        "Lumpia Shanghai",
			Description: "Crispy fried spring rolls filled with savory ground pork, carrots, and onions. Served with sweet chili sauce.",
			Prices:      Prices{Small: 8.50, Large: 14.00},
			Category:    CategoryAppetizer,
			Image:       "https://images.unsplash.com/photo-1626804475297-411dbe63c4df?auto=format&fit=crop&q=80&w=800",
			Visible:     true,
		},
		{
			ID:          "3",
			Name:        "Sinigang na Baboy",
			Description: "A comforting sour tamarind soup with tender pork belly, kangkong (water spinach), and vegetables.",
			Prices:      Prices{Small: 0, Large: 15.50},
			Category:    CategoryMain,
			Image:       "https://images.unsplash.com/photo-1604579963283-f661759695d6?auto=format&fit=crop&q=80&w=800",
			Visible:     true,
		},
	}
}

func DefaultContent() SiteContent {
	return SiteContent{
		Hero: &Hero{
			Images: []HeroImage{
				{ID: "h1", URL: "https://images.unsplash.com/photo-1518509562904-e7ef99cdcc86?auto=format&fit=crop&q=80&w=1920", Visible: true},
				{ID: "h2", URL: "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?auto=format&fit=crop&q=80&w=1920", Visible: true},
				{ID: "h3", URL: "https://images.unsplash.com/photo-1534944923498-84e45eb3dbf4?auto=format&fit=crop&q=80&w=1920", Visible: true},
			},
		},
		About: &About{
			Title:      "Our Heritage",
			Subtitle:   "Authentic Filipino flavors served with a smile.",
			StoryTitle: "From Our Kitchen to Yours",
			StoryText:  "JoShem Foods brings the comforting, home-style flavors of the Philippines to your table. Everything we make is cooked with puso (heart) using time-honored recipes, quality ingredients, and the kind of care you can taste in every bite.",
			StoryImage: "https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&q=80&w=800",
		},
		Contact: &Contact{
			Address: "123 Manila Avenue, Food District, CA 90000",
			Phone:   "(555) 123-4567",
			Email:   "orders@joshemfoods.com",
			Hours: Hours{
				MonFri: "10:00 AM - 9:00 PM",
				Sat:    "11:00 AM - 10:00 PM",
				Sun:    "Closed",
			},
		},
		Socials: &Socials{
			Facebook:  "https://facebook.com/joshemfoods",
			Instagram: "https://instagram.com/joshemfoods",
			Twitter:   "https://twitter.com/joshemfoods",
		},
		Settings: &Settings{MinPrepTime: DefaultMinPrepHours},
	}
}

func DefaultTestimonials() []Testimonial {
	return []Testimonial{
		{ID: "1", Name: "Maria Santos", Rating: 5, Text: "Absolutely the best Filipino food I've had outside of Manila. The Adobo tastes just like home!"},
		{ID: "2", Name: "Ricardo Batungbakal", Rating: 5, Text: "The Lumpia Shanghai is incredibly crispy! I ordered 50 pieces for my son's birthday and they were gone in minutes."},
		{ID: "3", Name: "Jocelyn Dimagiba", Rating: 4, Text: "The Kare-Kare sauce is thick and savory, just the way it should be. A bit of a wait for delivery, but worth it."},
		{ID: "4", Name: "Teresita Mercado", Rating: 5, Text: "The Pancit Bihon brought back so many memories of fiestas in the province. It's not too greasy and packed with fresh vegetables."},
		{ID: "5", Name: "Benigno Silverio", Rating: 4, Text: "Solid food and very friendly staff. The Sisig has a nice kick to it. I'll definitely be coming back to try the desserts next time."},
		{ID: "6", Name: "Gloria Evangelista", Rating: 5, Text: "They never fail to impress. I've ordered their Bilao of noodles multiple times for office meetings and it's always a hit."},
	}
}

// MergeContentWithDefaults overlays a stored content document onto the
// defaults sub-record by sub-record. Documents written before the schema grew
// may miss whole sub-records (settings, socials); those gaps must not erase
// the rest of the content.
func MergeContentWithDefaults(stored SiteContent) SiteContent {
	merged := DefaultContent()

	if stored.Hero != nil && len(stored.Hero.Images) > 0 {
		merged.Hero = stored.Hero
	}
	if stored.About != nil {
		merged.About = mergeAbout(*merged.About, *stored.About)
	}
	if stored.Contact != nil {
		merged.Contact = mergeContact(*merged.Contact, *stored.Contact)
	}
	if stored.Socials != nil {
		merged.Socials = stored.Socials
	}
	if stored.Settings != nil {
		merged.Settings = stored.Settings
	}

	return merged
}

func mergeAbout(base, stored About) *About {
	if stored.Title != "" {
		base.Title = stored.Title
	}
	if stored.Subtitle != "" {
		base.Subtitle = stored.Subtitle
	}
	if stored.StoryTitle != "" {
		base.StoryTitle = stored.StoryTitle
	}
	if stored.StoryText != "" {
		base.StoryText = stored.StoryText
	}
	if stored.StoryImage != "" {
		base.StoryImage = stored.StoryImage
	}
	return &base
}

func mergeContact(base, stored Contact) *Contact {
	if stored.Address != "" {
		base.Address = stored.Address
	}
	if stored.Phone != "" {
		base.Phone = stored.Phone
	}
	if stored.Email != "" {
		base.Email = stored.Email
	}
	if stored.Hours.MonFri != "" {
		base.Hours.MonFri = stored.Hours.MonFri
	}
	if stored.Hours.Sat != "" {
		base.Hours.Sat = stored.Hours.Sat
	}
	if stored.Hours.Sun != "" {
		base.Hours.Sun = stored.Hours.Sun
	}
	return &base
}
