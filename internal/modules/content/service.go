package content

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"traveladdicts/internal/cache"
	"traveladdicts/internal/domain"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
)

//go:embed content.yaml
var embedded []byte

const galleryLimit = 200

type document struct {
	FAQs  []domain.FAQ      `yaml:"faqs"`
	Posts []domain.BlogPost `yaml:"posts"`
	Pages []domain.Page     `yaml:"pages"`
}

// Filter is the local filter every content listing offers: free text plus a category and,
// for the blog, a tag. Empty fields match everything.
type Filter struct {
	Q        string `form:"q"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
}

type Listing[T any] struct {
	Items      []T      `json:"items"`
	Categories []string `json:"categories"`
}

type Service struct {
	doc   document
	gql   graphql.Runner
	cache cache.Store
	ttl   time.Duration
}

func NewService(gql graphql.Runner, store cache.Store, ttl time.Duration) (*Service, error) {
	return newService(embedded, gql, store, ttl)
}

func newService(raw []byte, gql graphql.Runner, store cache.Store, ttl time.Duration) (*Service, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	// newest first
	sort.SliceStable(doc.Posts, func(i, j int) bool { return doc.Posts[i].PublishedAt > doc.Posts[j].PublishedAt })
	return &Service{doc: doc, gql: gql, cache: store, ttl: ttl}, nil
}

func (s *Service) FAQs(f Filter) Listing[domain.FAQ] {
	items := make([]domain.FAQ, 0, len(s.doc.FAQs))
	cats := make([]string, 0)
	for _, faq := range s.doc.FAQs {
		cats = appendUnique(cats, faq.Category)
		if !categoryMatch(f.Category, faq.Category) || !textMatch(f.Q, faq.Question, faq.Answer) {
			continue
		}
		items = append(items, faq)
	}
	return Listing[domain.FAQ]{Items: items, Categories: cats}
}

// Posts lists blog posts without their bodies.
func (s *Service) Posts(f Filter) Listing[domain.BlogPost] {
	items := make([]domain.BlogPost, 0, len(s.doc.Posts))
	cats := make([]string, 0)
	for _, p := range s.doc.Posts {
		cats = appendUnique(cats, p.Category)
		if !categoryMatch(f.Category, p.Category) || !tagMatch(f.Tag, p.Tags) {
			continue
		}
		if !textMatch(f.Q, append([]string{p.Title, p.Excerpt, p.Body, p.Author}, p.Tags...)...) {
			continue
		}
		p.Body = ""
		items = append(items, p)
	}
	return Listing[domain.BlogPost]{Items: items, Categories: cats}
}

func (s *Service) Post(slug string) (domain.BlogPost, error) {
	for _, p := range s.doc.Posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.BlogPost{}, ErrNotFound
}

func (s *Service) Page(slug string) (domain.Page, error) {
	for _, p := range s.doc.Pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Page{}, ErrNotFound
}

// Gallery lists uploaded images, optionally narrowed to one category and a text match
// on title or destination.
func (s *Service) Gallery(ctx context.Context, f Filter) (Listing[domain.GalleryItem], error) {
	all, err := s.galleryItems(ctx)
	if err != nil {
		return Listing[domain.GalleryItem]{}, err
	}

	items := make([]domain.GalleryItem, 0, len(all))
	cats := make([]string, 0)
	for _, it := range all {
		cats = appendUnique(cats, it.Category)
		if categoryMatch(f.Category, it.Category) && textMatch(f.Q, it.Title, it.Destination) {
			items = append(items, it)
		}
	}
	return Listing[domain.GalleryItem]{Items: items, Categories: cats}, nil
}

func (s *Service) galleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	const key = "content:gallery"
	if s.cache != nil {
		var hit []domain.GalleryItem
		if ok, err := s.cache.Get(ctx, key, &hit); err == nil && ok {
			return hit, nil
		} else if err != nil {
			slog.Warn("gallery cache read failed", "error", err)
		}
	}

	var resp struct {
		Media []domain.Media `json:"media"`
	}
	vars := map[string]any{"limit": galleryLimit, "offset": 0}
	if err := s.gql.Request(ctx, queries.GetMedia, vars, nil, &resp); err != nil {
		return nil, err
	}

	items := make([]domain.GalleryItem, 0, len(resp.Media))
	for _, m := range resp.Media {
		if !strings.HasPrefix(m.MimeType, "image/") {
			continue
		}
		items = append(items, toGalleryItem(m))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, s.ttl); err != nil {
			slog.Warn("gallery cache write failed", "error", err)
		}
	}
	return items, nil
}

func toGalleryItem(m domain.Media) domain.GalleryItem {
	title := m.Caption
	if title == "" {
		title = m.Alt
	}
	if title == "" {
		title = m.Filename
	}
	var dest string
	for _, tag := range m.Tags {
		if d, ok := strings.CutPrefix(tag, "destination:"); ok {
			dest = d
			break
		}
	}
	return domain.GalleryItem{ID: m.ID, URL: m.URL, Title: title, Category: m.Category, Destination: dest}
}

func categoryMatch(want, got string) bool {
	return want == "" || strings.EqualFold(want, "all") || strings.EqualFold(want, got)
}

func tagMatch(want string, tags []string) bool {
	if want == "" {
		return true
	}
	return slices.ContainsFunc(tags, func(t string) bool { return strings.EqualFold(t, want) })
}

func textMatch(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
