package content

// Collection is the document-store collection that holds all section
// documents. Each section key addresses exactly one document in it.
const Collection = "content"

// Section describes one named content document: its key, the complete
// default record every reader falls back on, which fields hold image URLs
// (and therefore get the URL guard on merge), and the shape of its item
// list when the section is list-valued.
type Section struct {
	Key         string
	Defaults    Document
	ImageFields []string
	// HasItems marks list-shaped sections; the list lives under the
	// conventional "items" wrapper key.
	HasItems bool
	// PaddedIDs selects zero-padded string item ids ("01", "02", ...)
	// instead of numeric ids.
	PaddedIDs bool
}

// DefaultDraft returns a fresh editable copy of the section defaults,
// suitable as an editor seed when no document exists yet.
func (s Section) DefaultDraft() Document {
	return s.Defaults.Clone()
}

var sections = []Section{
	{
		Key: "header",
		Defaults: Document{
			"logoText":  "folioworks",
			"ctaLabel":  "Let's talk",
			"ctaTarget": "#contact",
			"items": []any{
				Document{"id": float64(1), "label": "About", "href": "#about"},
				Document{"id": float64(2), "label": "Services", "href": "#services"},
				Document{"id": float64(3), "label": "Projects", "href": "#projects"},
				Document{"id": float64(4), "label": "Skills", "href": "#skills"},
				Document{"id": float64(5), "label": "Contact", "href": "#contact"},
			},
		},
		HasItems: true,
	},
	{
		Key: "hero",
		Defaults: Document{
			"titleLine1":   "Creating meaningful connections",
			"titleLine2":   "between brands and people",
			"subtitle":     "Marketing strategist helping ambitious teams tell stories that convert.",
			"ctaLabel":     "See my work",
			"ctaTarget":    "#projects",
			"accentColor":  "#e8552a",
			"portraitUrl":  "https://images.folioworks.dev/defaults/hero-portrait.jpg",
			"scrollHint":   "Scroll to explore",
			"availability": "Available for new projects",
		},
		ImageFields: []string{"portraitUrl"},
	},
	{
		Key: "about",
		Defaults: Document{
			"heading":    "About me",
			"intro":      "I'm a marketing consultant with a decade of experience turning product stories into growth.",
			"body":       "From early-stage startups to established brands, I build campaigns grounded in research, positioning and honest storytelling. I believe the best marketing doesn't feel like marketing.",
			"photoUrl":   "https://images.folioworks.dev/defaults/about-photo.jpg",
			"yearsLabel": "10+ years",
			"location":   "Berlin, Germany",
		},
		ImageFields: []string{"photoUrl"},
	},
	{
		Key: "services",
		Defaults: Document{
			"heading":  "What I do",
			"subtitle": "Strategy, content and campaigns under one roof.",
			"items": []any{
				Document{"id": float64(1), "title": "Brand strategy", "description": "Positioning, messaging frameworks and naming that give your brand a clear voice.", "iconUrl": ""},
				Document{"id": float64(2), "title": "Content marketing", "description": "Editorial planning and long-form content that compounds over time.", "iconUrl": ""},
				Document{"id": float64(3), "title": "Campaign management", "description": "Full-funnel paid and organic campaigns, measured end to end.", "iconUrl": ""},
			},
		},
		ImageFields: []string{"iconUrl"},
		HasItems:    true,
	},
	{
		Key: "projects",
		Defaults: Document{
			"heading":  "Selected projects",
			"subtitle": "A few engagements I'm proud of.",
			"items": []any{
				Document{"id": "01", "title": "Nordwind relaunch", "client": "Nordwind Travel", "description": "Repositioned a regional travel brand for a national audience; bookings up 64% in six months.", "imageUrl": "https://images.folioworks.dev/defaults/project-nordwind.jpg", "linkUrl": "", "tags": []any{"branding", "campaign"}},
				Document{"id": "02", "title": "Kilterly launch", "client": "Kilterly", "description": "Go-to-market strategy and launch content for a B2B SaaS startup.", "imageUrl": "https://images.folioworks.dev/defaults/project-kilterly.jpg", "linkUrl": "", "tags": []any{"strategy", "content"}},
			},
		},
		ImageFields: []string{"imageUrl"},
		HasItems:    true,
		PaddedIDs:   true,
	},
	{
		Key: "skills",
		Defaults: Document{
			"heading": "Skills",
			"items": []any{
				Document{"id": float64(1), "name": "Brand positioning", "level": float64(95)},
				Document{"id": float64(2), "name": "Copywriting", "level": float64(90)},
				Document{"id": float64(3), "name": "SEO & analytics", "level": float64(80)},
				Document{"id": float64(4), "name": "Paid media", "level": float64(75)},
			},
		},
		HasItems: true,
	},
	{
		Key: "experience",
		Defaults: Document{
			"heading": "Experience",
			"items": []any{
				Document{
					"id": float64(1), "role": "Independent consultant", "organization": "folioworks",
					"period": "2019 — present", "kind": "work",
					"achievements": []any{"Built a client roster of 30+ brands", "Led rebrands for three funded startups"},
				},
				Document{
					"id": float64(2), "role": "Head of Marketing", "organization": "Kite & Anchor Agency",
					"period": "2015 — 2019", "kind": "work",
					"achievements": []any{"Grew agency retainer revenue 3x", "Hired and led a team of eight"},
				},
				Document{
					"id": float64(3), "role": "BA Communications", "organization": "Freie Universität Berlin",
					"period": "2011 — 2015", "kind": "education",
					"achievements": []any{},
				},
			},
		},
		HasItems: true,
	},
	{
		Key: "testimonials",
		Defaults: Document{
			"heading":  "Kind words",
			"subtitle": "What clients say about working together.",
			"items": []any{
				Document{"id": float64(1), "quote": "The clearest thinking we've ever had on our brand. Worth every cent.", "author": "Maren Holt", "role": "CEO, Nordwind Travel", "avatarUrl": ""},
				Document{"id": float64(2), "quote": "Our launch exceeded every target we set. Calm, sharp, reliable.", "author": "Jonas Pietila", "role": "Founder, Kilterly", "avatarUrl": ""},
			},
		},
		ImageFields: []string{"avatarUrl"},
		HasItems:    true,
	},
	{
		Key: "tools",
		Defaults: Document{
			"heading": "Tools I work with",
			"items": []any{
				Document{"id": float64(1), "name": "Google Analytics", "logoUrl": ""},
				Document{"id": float64(2), "name": "HubSpot", "logoUrl": ""},
				Document{"id": float64(3), "name": "Figma", "logoUrl": ""},
				Document{"id": float64(4), "name": "Ahrefs", "logoUrl": ""},
			},
		},
		ImageFields: []string{"logoUrl"},
		HasItems:    true,
	},
	{
		Key: "marketing",
		Defaults: Document{
			"heading":  "Marketing approach",
			"subtitle": "No silver bullets, just compounding fundamentals.",
			"body":     "Every engagement starts with research: your market, your customers, your numbers. Only then do we talk channels.",
			"items": []any{
				Document{"id": float64(1), "title": "Research first", "description": "Customer interviews and competitive analysis before a single word of copy."},
				Document{"id": float64(2), "title": "Message-market fit", "description": "Positioning tested against real buyers, not boardroom taste."},
				Document{"id": float64(3), "title": "Measure everything", "description": "Dashboards agreed up front so results are never a matter of opinion."},
			},
		},
		HasItems: true,
	},
	{
		Key: "contentStrategy",
		Defaults: Document{
			"heading":  "Content strategy",
			"subtitle": "Editorial systems that outlive any single campaign.",
			"body":     "A content engine is a flywheel: pillar pieces feed social, social feeds search, search feeds the pipeline.",
			"items": []any{
				Document{"id": float64(1), "title": "Pillar content", "description": "Deep, durable pieces your whole funnel can draw from."},
				Document{"id": float64(2), "title": "Distribution", "description": "Every piece planned with its channels, not published and prayed for."},
			},
		},
		HasItems: true,
	},
	{
		Key: "footer",
		Defaults: Document{
			"tagline":   "Let's build something people remember.",
			"email":     "hello@folioworks.dev",
			"phone":     "+49 30 1234 5678",
			"copyright": "© folioworks. All rights reserved.",
			"items": []any{
				Document{"id": float64(1), "label": "LinkedIn", "href": "https://linkedin.com/company/folioworks"},
				Document{"id": float64(2), "label": "Twitter", "href": "https://twitter.com/folioworks"},
				Document{"id": float64(3), "label": "Instagram", "href": "https://instagram.com/folioworks"},
			},
		},
		HasItems: true,
	},
}

var sectionIndex = func() map[string]Section {
	m := make(map[string]Section, len(sections))
	for _, s := range sections {
		m[s.Key] = s
	}
	return m
}()

// Lookup returns the section descriptor for key.
func Lookup(key string) (Section, bool) {
	s, ok := sectionIndex[key]
	return s, ok
}

// Sections returns all registered section descriptors in page order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}
