package memstore

import (
	"context"
	"time"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

// Users

func (s *Store) GetUser(_ context.Context, id string) (*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.get(id), nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.find(func(u *storage.User) bool { return u.Username == username }), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.find(func(u *storage.User) bool { return u.Email == email }), nil
}

func (s *Store) CreateUser(_ context.Context, u storage.User) (*storage.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	u.ID, u.CreatedAt, u.UpdatedAt = storage.NewID(), now, now
	return s.users.insert(s.next(), u.ID, u), nil
}

func (s *Store) UpdateUser(_ context.Context, id string, p storage.Patch) (*storage.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.patch(id, p, storage.Now())
}

func (s *Store) ListUsers(_ context.Context) ([]storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return descending(s.users.scan(nil), func(u *storage.User) string { return u.Username }), nil
}

// Site config

func (s *Store) GetSiteConfig(_ context.Context) (*storage.SiteConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := newestFirst(s.siteConfigs.scan(nil), func(c *storage.SiteConfig) time.Time { return c.UpdatedAt })
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Store) CreateSiteConfig(_ context.Context, c storage.SiteConfig) (*storage.SiteConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = storage.NewID(), now, now
	return s.siteConfigs.insert(s.next(), c.ID, c), nil
}

func (s *Store) UpdateSiteConfig(_ context.Context, id string, p storage.Patch) (*storage.SiteConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.siteConfigs.patch(id, p, storage.Now())
}

// Testimonials

func (s *Store) ListTestimonials(_ context.Context) ([]storage.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.testimonials.scan(nil), func(t *storage.Testimonial) time.Time { return t.CreatedAt }), nil
}

func (s *Store) GetTestimonial(_ context.Context, id string) (*storage.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.testimonials.get(id), nil
}

func (s *Store) CreateTestimonial(_ context.Context, t storage.Testimonial) (*storage.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	t.ID, t.CreatedAt, t.UpdatedAt = storage.NewID(), now, now
	return s.testimonials.insert(s.next(), t.ID, t), nil
}

func (s *Store) UpdateTestimonial(_ context.Context, id string, p storage.Patch) (*storage.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.testimonials.patch(id, p, storage.Now())
}

func (s *Store) DeleteTestimonial(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.testimonials.delete(id), nil
}

// FAQ categories

func (s *Store) ListFaqCategories(_ context.Context) ([]storage.FaqCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ascending(s.faqCategories.scan(nil), func(c *storage.FaqCategory) int { return c.SortOrder }), nil
}

func (s *Store) GetFaqCategory(_ context.Context, id string) (*storage.FaqCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.faqCategories.get(id), nil
}

func (s *Store) CreateFaqCategory(_ context.Context, c storage.FaqCategory) (*storage.FaqCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = storage.NewID(), now, now
	return s.faqCategories.insert(s.next(), c.ID, c), nil
}

func (s *Store) UpdateFaqCategory(_ context.Context, id string, p storage.Patch) (*storage.FaqCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faqCategories.patch(id, p, storage.Now())
}

func (s *Store) DeleteFaqCategory(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faqCategories.delete(id), nil
}

// FAQs

func (s *Store) ListFaqs(_ context.Context) ([]storage.Faq, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ascending(s.faqs.scan(nil), func(f *storage.Faq) int { return f.SortOrder }), nil
}

func (s *Store) GetFaq(_ context.Context, id string) (*storage.Faq, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.faqs.get(id), nil
}

func (s *Store) ListFaqsByCategory(_ context.Context, categoryID string) ([]storage.Faq, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.faqs.scan(func(f *storage.Faq) bool { return f.CategoryID != nil && *f.CategoryID == categoryID })
	return ascending(rows, func(f *storage.Faq) int { return f.SortOrder }), nil
}

func (s *Store) CreateFaq(_ context.Context, f storage.Faq) (*storage.Faq, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	f.ID, f.CreatedAt, f.UpdatedAt = storage.NewID(), now, now
	return s.faqs.insert(s.next(), f.ID, f), nil
}

func (s *Store) UpdateFaq(_ context.Context, id string, p storage.Patch) (*storage.Faq, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faqs.patch(id, p, storage.Now())
}

func (s *Store) DeleteFaq(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faqs.delete(id), nil
}

// Contact messages

func (s *Store) ListContactMessages(_ context.Context) ([]storage.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.contactMessages.scan(nil), func(m *storage.ContactMessage) time.Time { return m.CreatedAt }), nil
}

func (s *Store) GetContactMessage(_ context.Context, id string) (*storage.ContactMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contactMessages.get(id), nil
}

func (s *Store) CreateContactMessage(_ context.Context, m storage.ContactMessage) (*storage.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	m.ID, m.CreatedAt, m.UpdatedAt = storage.NewID(), now, now
	return s.contactMessages.insert(s.next(), m.ID, m), nil
}

func (s *Store) UpdateContactMessage(_ context.Context, id string, p storage.Patch) (*storage.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contactMessages.patch(id, p, storage.Now())
}

func (s *Store) DeleteContactMessage(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contactMessages.delete(id), nil
}

// Contact info

func (s *Store) GetContactInfo(_ context.Context) (*storage.ContactInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contactInfo.find(nil), nil
}

func (s *Store) CreateContactInfo(_ context.Context, info storage.ContactInfo) (*storage.ContactInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	info.ID, info.CreatedAt, info.UpdatedAt = storage.NewID(), now, now
	return s.contactInfo.insert(s.next(), info.ID, info), nil
}

func (s *Store) UpdateContactInfo(_ context.Context, id string, p storage.Patch) (*storage.ContactInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contactInfo.patch(id, p, storage.Now())
}

// Sections

func (s *Store) ListSections(_ context.Context) ([]storage.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ascending(s.sections.scan(nil), func(sec *storage.Section) int { return sec.SortOrder }), nil
}

func (s *Store) GetSection(_ context.Context, id string) (*storage.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sections.get(id), nil
}

func (s *Store) CreateSection(_ context.Context, sec storage.Section) (*storage.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	sec.ID, sec.CreatedAt, sec.UpdatedAt = storage.NewID(), now, now
	return s.sections.insert(s.next(), sec.ID, sec), nil
}

func (s *Store) UpdateSection(_ context.Context, id string, p storage.Patch) (*storage.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections.patch(id, p, storage.Now())
}

func (s *Store) DeleteSection(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections.delete(id), nil
}

// Blog posts

func withAuthor(p *storage.BlogPost) *storage.BlogPost {
	if p != nil {
		p.AuthorName = storage.BlogAuthorName
	}
	return p
}

func (s *Store) ListBlogPosts(_ context.Context) ([]storage.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := newestFirst(s.blogPosts.scan(nil), func(p *storage.BlogPost) time.Time { return p.CreatedAt })
	for i := range rows {
		withAuthor(&rows[i])
	}
	return rows, nil
}

func (s *Store) GetBlogPost(_ context.Context, id string) (*storage.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return withAuthor(s.blogPosts.get(id)), nil
}

func (s *Store) GetBlogPostBySlug(_ context.Context, slug string) (*storage.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return withAuthor(s.blogPosts.find(func(p *storage.BlogPost) bool { return p.Slug == slug })), nil
}

func (s *Store) CreateBlogPost(_ context.Context, post storage.BlogPost) (*storage.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	post.ID, post.CreatedAt, post.UpdatedAt = storage.NewID(), now, now
	post.AuthorName = ""
	return withAuthor(s.blogPosts.insert(s.next(), post.ID, post)), nil
}

func (s *Store) UpdateBlogPost(_ context.Context, id string, p storage.Patch) (*storage.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, err := s.blogPosts.patch(id, p, storage.Now())
	return withAuthor(post), err
}

func (s *Store) DeleteBlogPost(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blogPosts.delete(id), nil
}

// IncrementBlogPostViews mirrors the persistent backend: an unknown id is
// not a failure.
func (s *Store) IncrementBlogPostViews(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.blogPosts.rows[id]; ok {
		rec.val.Views++
		rec.val.UpdatedAt = storage.Now()
	}
	return true
}

// Page customizations

func (s *Store) GetPageCustomization(_ context.Context, pageID, userID string) (*storage.PageCustomization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageCustomizations.find(func(c *storage.PageCustomization) bool {
		return c.PageID == pageID && c.UserID == userID && c.IsActive
	}), nil
}

func (s *Store) ListPageCustomizations(_ context.Context, userID string) ([]storage.PageCustomization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.pageCustomizations.scan(func(c *storage.PageCustomization) bool { return c.UserID == userID && c.IsActive })
	return newestFirst(rows, func(c *storage.PageCustomization) time.Time { return c.UpdatedAt }), nil
}

func (s *Store) CreatePageCustomization(_ context.Context, c storage.PageCustomization) (*storage.PageCustomization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = storage.NewID(), now, now
	return s.pageCustomizations.insert(s.next(), c.ID, c), nil
}

// UpdatePageCustomization patches every row of the (page, user) pair and
// returns the first one. Either all rows change or none do.
func (s *Store) UpdatePageCustomization(_ context.Context, pageID, userID string, p storage.Patch) (*storage.PageCustomization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.pageCustomizations.patchWhere(func(c *storage.PageCustomization) bool {
		return c.PageID == pageID && c.UserID == userID
	}, p, storage.Now())
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (s *Store) DeletePageCustomization(_ context.Context, pageID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := storage.Now()
	for _, rec := range s.pageCustomizations.rows {
		if rec.val.PageID == pageID && rec.val.UserID == userID {
			rec.val.IsActive = false
			rec.val.UpdatedAt = now
		}
	}
	return true
}

// Visual customizations

func (s *Store) ListVisualCustomizations(_ context.Context, pageID string) ([]storage.VisualCustomization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.visualCustomizations.scan(func(c *storage.VisualCustomization) bool { return c.PageID == pageID })
	return newestFirst(rows, func(c *storage.VisualCustomization) time.Time { return c.UpdatedAt }), nil
}

func (s *Store) GetVisualCustomization(_ context.Context, elementSelector, pageID string) (*storage.VisualCustomization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findVisual(elementSelector, pageID), nil
}

func (s *Store) findVisual(elementSelector, pageID string) *storage.VisualCustomization {
	return s.visualCustomizations.find(func(c *storage.VisualCustomization) bool {
		return c.ElementSelector == elementSelector && c.PageID == pageID
	})
}

func (s *Store) SaveVisualCustomization(_ context.Context, c storage.VisualCustomization) (*storage.VisualCustomization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertVisual(c, func(row *storage.VisualCustomization) { row.UpdatedBy = c.UpdatedBy }), nil
}

func (s *Store) CreateVisualCustomization(_ context.Context, c storage.VisualCustomization) (*storage.VisualCustomization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertVisual(c, func(row *storage.VisualCustomization) { row.UserID = c.UserID }), nil
}

// upsertVisual updates value and property of the (selector, page) row, plus
// whatever owner column set applies, or inserts c. Callers hold mu.
func (s *Store) upsertVisual(c storage.VisualCustomization, set func(*storage.VisualCustomization)) *storage.VisualCustomization {
	now := storage.Now()
	if existing := s.findVisual(c.ElementSelector, c.PageID); existing != nil {
		existing.Value = c.Value
		existing.Property = c.Property
		set(existing)
		existing.UpdatedAt = now
		return s.visualCustomizations.replace(existing.ID, *existing)
	}
	c.ID, c.CreatedAt, c.UpdatedAt = storage.NewID(), now, now
	return s.visualCustomizations.insert(s.next(), c.ID, c)
}

func (s *Store) UpdateVisualCustomization(_ context.Context, id string, p storage.Patch) (*storage.VisualCustomization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visualCustomizations.patch(id, p, storage.Now())
}

func (s *Store) DeleteVisualCustomization(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visualCustomizations.delete(id), nil
}

func (s *Store) DeleteAllVisualCustomizations(_ context.Context, pageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.visualCustomizations.ids(func(c *storage.VisualCustomization) bool { return c.PageID == pageID }) {
		s.visualCustomizations.delete(id)
	}
	return true
}
