package domain

// Static site content (blog, FAQ, legal pages) served from the embedded content file.

type BlogPost struct {
	Slug        string   `json:"slug" yaml:"slug"`
	Title       string   `json:"title" yaml:"title"`
	Excerpt     string   `json:"excerpt" yaml:"excerpt"`
	Body        string   `json:"body,omitempty" yaml:"body"`
	Author      string   `json:"author" yaml:"author"`
	Category    string   `json:"category" yaml:"category"`
	Tags        []string `json:"tags" yaml:"tags"`
	Image       string   `json:"image,omitempty" yaml:"image"`
	PublishedAt string   `json:"publishedAt" yaml:"publishedAt"`
	ReadMinutes int      `json:"readMinutes" yaml:"readMinutes"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

type FAQ struct {
	ID       string `json:"id" yaml:"id"`
	Category string `json:"category" yaml:"category"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

type PageSection struct {
	Heading string   `json:"heading" yaml:"heading"`
	Body    string   `json:"body" yaml:"body"`
	Items   []string `json:"items,omitempty" yaml:"items"`
}

// Page is a legal or informational page: about, insurance, cancellation, terms.
type Page struct {
	Slug      string        `json:"slug" yaml:"slug"`
	Title     string        `json:"title" yaml:"title"`
	Summary   string        `json:"summary" yaml:"summary"`
	UpdatedAt string        `json:"updatedAt" yaml:"updatedAt"`
	Sections  []PageSection `json:"sections" yaml:"sections"`
}

type GalleryItem struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Destination string `json:"destination,omitempty"`
}
