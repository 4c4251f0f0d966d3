package pgstore

import (
	"context"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

// Users

func (s *Store) GetUser(ctx context.Context, id string) (*storage.User, error) {
	return getOne[storage.User](ctx, s.db, "get user", `SELECT * FROM users WHERE id = $1`, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*storage.User, error) {
	return getOne[storage.User](ctx, s.db, "get user by username", `SELECT * FROM users WHERE username = $1 LIMIT 1`, username)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*storage.User, error) {
	return getOne[storage.User](ctx, s.db, "get user by email", `SELECT * FROM users WHERE email = $1 LIMIT 1`, email)
}

func (s *Store) CreateUser(ctx context.Context, u storage.User) (*storage.User, error) {
	stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return insert(ctx, s.db, "create user", "users", &u)
}

func (s *Store) UpdateUser(ctx context.Context, id string, p storage.Patch) (*storage.User, error) {
	return update[storage.User](ctx, s.db, "update user", "users", id, p)
}

func (s *Store) ListUsers(ctx context.Context) ([]storage.User, error) {
	return list[storage.User](ctx, s.db, "list users", `SELECT * FROM users ORDER BY username DESC`)
}

// Site config

func (s *Store) GetSiteConfig(ctx context.Context) (*storage.SiteConfig, error) {
	return getOne[storage.SiteConfig](ctx, s.db, "get site config", `SELECT * FROM site_config ORDER BY updated_at DESC LIMIT 1`)
}

func (s *Store) CreateSiteConfig(ctx context.Context, c storage.SiteConfig) (*storage.SiteConfig, error) {
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return insert(ctx, s.db, "create site config", "site_config", &c)
}

func (s *Store) UpdateSiteConfig(ctx context.Context, id string, p storage.Patch) (*storage.SiteConfig, error) {
	return update[storage.SiteConfig](ctx, s.db, "update site config", "site_config", id, p)
}

// Testimonials

func (s *Store) ListTestimonials(ctx context.Context) ([]storage.Testimonial, error) {
	return list[storage.Testimonial](ctx, s.db, "list testimonials", `SELECT * FROM testimonials ORDER BY created_at DESC`)
}

func (s *Store) GetTestimonial(ctx context.Context, id string) (*storage.Testimonial, error) {
	return getOne[storage.Testimonial](ctx, s.db, "get testimonial", `SELECT * FROM testimonials WHERE id = $1`, id)
}

func (s *Store) CreateTestimonial(ctx context.Context, t storage.Testimonial) (*storage.Testimonial, error) {
	stamp(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return insert(ctx, s.db, "create testimonial", "testimonials", &t)
}

func (s *Store) UpdateTestimonial(ctx context.Context, id string, p storage.Patch) (*storage.Testimonial, error) {
	return update[storage.Testimonial](ctx, s.db, "update testimonial", "testimonials", id, p)
}

func (s *Store) DeleteTestimonial(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete testimonial", "testimonials", id)
}

// FAQ categories and FAQs

func (s *Store) ListFaqCategories(ctx context.Context) ([]storage.FaqCategory, error) {
	return list[storage.FaqCategory](ctx, s.db, "list faq categories", `SELECT * FROM faq_categories ORDER BY sort_order ASC`)
}

func (s *Store) GetFaqCategory(ctx context.Context, id string) (*storage.FaqCategory, error) {
	return getOne[storage.FaqCategory](ctx, s.db, "get faq category", `SELECT * FROM faq_categories WHERE id = $1`, id)
}

func (s *Store) CreateFaqCategory(ctx context.Context, c storage.FaqCategory) (*storage.FaqCategory, error) {
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return insert(ctx, s.db, "create faq category", "faq_categories", &c)
}

func (s *Store) UpdateFaqCategory(ctx context.Context, id string, p storage.Patch) (*storage.FaqCategory, error) {
	return update[storage.FaqCategory](ctx, s.db, "update faq category", "faq_categories", id, p)
}

func (s *Store) DeleteFaqCategory(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete faq category", "faq_categories", id)
}

func (s *Store) ListFaqs(ctx context.Context) ([]storage.Faq, error) {
	return list[storage.Faq](ctx, s.db, "list faqs", `SELECT * FROM faqs ORDER BY sort_order ASC`)
}

func (s *Store) GetFaq(ctx context.Context, id string) (*storage.Faq, error) {
	return getOne[storage.Faq](ctx, s.db, "get faq", `SELECT * FROM faqs WHERE id = $1`, id)
}

func (s *Store) ListFaqsByCategory(ctx context.Context, categoryID string) ([]storage.Faq, error) {
	return list[storage.Faq](ctx, s.db, "list faqs by category",
		`SELECT * FROM faqs WHERE category_id = $1 ORDER BY sort_order ASC`, categoryID)
}

func (s *Store) CreateFaq(ctx context.Context, f storage.Faq) (*storage.Faq, error) {
	stamp(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	return insert(ctx, s.db, "create faq", "faqs", &f)
}

func (s *Store) UpdateFaq(ctx context.Context, id string, p storage.Patch) (*storage.Faq, error) {
	return update[storage.Faq](ctx, s.db, "update faq", "faqs", id, p)
}

func (s *Store) DeleteFaq(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete faq", "faqs", id)
}

// Contact

func (s *Store) ListContactMessages(ctx context.Context) ([]storage.ContactMessage, error) {
	return list[storage.ContactMessage](ctx, s.db, "list contact messages", `SELECT * FROM contact_messages ORDER BY created_at DESC`)
}

func (s *Store) GetContactMessage(ctx context.Context, id string) (*storage.ContactMessage, error) {
	return getOne[storage.ContactMessage](ctx, s.db, "get contact message", `SELECT * FROM contact_messages WHERE id = $1`, id)
}

func (s *Store) CreateContactMessage(ctx context.Context, m storage.ContactMessage) (*storage.ContactMessage, error) {
	stamp(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return insert(ctx, s.db, "create contact message", "contact_messages", &m)
}

func (s *Store) UpdateContactMessage(ctx context.Context, id string, p storage.Patch) (*storage.ContactMessage, error) {
	return update[storage.ContactMessage](ctx, s.db, "update contact message", "contact_messages", id, p)
}

func (s *Store) DeleteContactMessage(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete contact message", "contact_messages", id)
}

func (s *Store) GetContactInfo(ctx context.Context) (*storage.ContactInfo, error) {
	return getOne[storage.ContactInfo](ctx, s.db, "get contact info", `SELECT * FROM contact_info ORDER BY created_at ASC LIMIT 1`)
}

func (s *Store) CreateContactInfo(ctx context.Context, info storage.ContactInfo) (*storage.ContactInfo, error) {
	stamp(&info.ID, &info.CreatedAt, &info.UpdatedAt)
	return insert(ctx, s.db, "create contact info", "contact_info", &info)
}

func (s *Store) UpdateContactInfo(ctx context.Context, id string, p storage.Patch) (*storage.ContactInfo, error) {
	return update[storage.ContactInfo](ctx, s.db, "update contact info", "contact_info", id, p)
}

// Sections

func (s *Store) ListSections(ctx context.Context) ([]storage.Section, error) {
	return list[storage.Section](ctx, s.db, "list sections", `SELECT * FROM sections ORDER BY sort_order ASC`)
}

func (s *Store) GetSection(ctx context.Context, id string) (*storage.Section, error) {
	return getOne[storage.Section](ctx, s.db, "get section", `SELECT * FROM sections WHERE id = $1`, id)
}

func (s *Store) CreateSection(ctx context.Context, sec storage.Section) (*storage.Section, error) {
	stamp(&sec.ID, &sec.CreatedAt, &sec.UpdatedAt)
	return insert(ctx, s.db, "create section", "sections", &sec)
}

func (s *Store) UpdateSection(ctx context.Context, id string, p storage.Patch) (*storage.Section, error) {
	return update[storage.Section](ctx, s.db, "update section", "sections", id, p)
}

func (s *Store) DeleteSection(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete section", "sections", id)
}

// Blog posts

func withAuthor(p *storage.BlogPost) *storage.BlogPost {
	if p != nil {
		p.AuthorName = storage.BlogAuthorName
	}
	return p
}

func (s *Store) ListBlogPosts(ctx context.Context) ([]storage.BlogPost, error) {
	posts, err := list[storage.BlogPost](ctx, s.db, "list blog posts", `SELECT * FROM blog_posts ORDER BY created_at DESC`)
	for i := range posts {
		withAuthor(&posts[i])
	}
	return posts, err
}

func (s *Store) GetBlogPost(ctx context.Context, id string) (*storage.BlogPost, error) {
	post, err := getOne[storage.BlogPost](ctx, s.db, "get blog post", `SELECT * FROM blog_posts WHERE id = $1`, id)
	return withAuthor(post), err
}

func (s *Store) GetBlogPostBySlug(ctx context.Context, slug string) (*storage.BlogPost, error) {
	post, err := getOne[storage.BlogPost](ctx, s.db, "get blog post by slug", `SELECT * FROM blog_posts WHERE slug = $1`, slug)
	return withAuthor(post), err
}

func (s *Store) CreateBlogPost(ctx context.Context, post storage.BlogPost) (*storage.BlogPost, error) {
	stamp(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	created, err := insert(ctx, s.db, "create blog post", "blog_posts", &post)
	return withAuthor(created), err
}

func (s *Store) UpdateBlogPost(ctx context.Context, id string, p storage.Patch) (*storage.BlogPost, error) {
	post, err := update[storage.BlogPost](ctx, s.db, "update blog post", "blog_posts", id, p)
	return withAuthor(post), err
}

func (s *Store) DeleteBlogPost(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete blog post", "blog_posts", id)
}

func (s *Store) IncrementBlogPostViews(ctx context.Context, id string) bool {
	_, err := s.db.Exec(ctx, `UPDATE blog_posts SET views = views + 1, updated_at = $1 WHERE id = $2`, storage.Now(), id)
	if err != nil {
		s.log.Error("increment blog post views", "post_id", id, "err", err)
		return false
	}
	return true
}

// Page customizations

func (s *Store) GetPageCustomization(ctx context.Context, pageID, userID string) (*storage.PageCustomization, error) {
	return getOne[storage.PageCustomization](ctx, s.db, "get page customization",
		`SELECT * FROM page_customizations WHERE page_id = $1 AND user_id = $2 AND is_active LIMIT 1`, pageID, userID)
}

func (s *Store) ListPageCustomizations(ctx context.Context, userID string) ([]storage.PageCustomization, error) {
	return list[storage.PageCustomization](ctx, s.db, "list page customizations",
		`SELECT * FROM page_customizations WHERE user_id = $1 AND is_active ORDER BY updated_at DESC`, userID)
}

func (s *Store) CreatePageCustomization(ctx context.Context, c storage.PageCustomization) (*storage.PageCustomization, error) {
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return insert(ctx, s.db, "create page customization", "page_customizations", &c)
}

func (s *Store) UpdatePageCustomization(ctx context.Context, pageID, userID string, p storage.Patch) (*storage.PageCustomization, error) {
	sql, args := updateSQL("page_customizations", storage.Mutable[storage.PageCustomization](p), "page_id = ? AND user_id = ?")
	return getOne[storage.PageCustomization](ctx, s.db, "update page customization", sql, append(args, pageID, userID)...)
}

func (s *Store) DeletePageCustomization(ctx context.Context, pageID, userID string) bool {
	_, err := s.db.Exec(ctx, `UPDATE page_customizations SET is_active = FALSE, updated_at = $1 WHERE page_id = $2 AND user_id = $3`,
		storage.Now(), pageID, userID)
	if err != nil {
		s.log.Error("delete page customization", "page_id", pageID, "user_id", userID, "err", err)
		return false
	}
	return true
}

// Visual customizations

func (s *Store) ListVisualCustomizations(ctx context.Context, pageID string) ([]storage.VisualCustomization, error) {
	return list[storage.VisualCustomization](ctx, s.db, "list visual customizations",
		`SELECT * FROM visual_customizations WHERE page_id = $1 ORDER BY updated_at DESC`, pageID)
}

func (s *Store) GetVisualCustomization(ctx context.Context, elementSelector, pageID string) (*storage.VisualCustomization, error) {
	return getOne[storage.VisualCustomization](ctx, s.db, "get visual customization",
		`SELECT * FROM visual_customizations WHERE element_selector = $1 AND page_id = $2 LIMIT 1`, elementSelector, pageID)
}

// SaveVisualCustomization updates the row for (selector, page) or inserts one.
func (s *Store) SaveVisualCustomization(ctx context.Context, c storage.VisualCustomization) (*storage.VisualCustomization, error) {
	return s.upsertVisual(ctx, "save visual customization", c, storage.Patch{"updated_by": c.UpdatedBy})
}

func (s *Store) CreateVisualCustomization(ctx context.Context, c storage.VisualCustomization) (*storage.VisualCustomization, error) {
	return s.upsertVisual(ctx, "create visual customization", c, storage.Patch{"user_id": c.UserID})
}

func (s *Store) upsertVisual(ctx context.Context, op string, c storage.VisualCustomization, owner storage.Patch) (*storage.VisualCustomization, error) {
	existing, err := s.GetVisualCustomization(ctx, c.ElementSelector, c.PageID)
	if err != nil {
		return nil, wrap(op, err)
	}
	if existing != nil {
		owner["value"], owner["property"] = c.Value, c.Property
		return update[storage.VisualCustomization](ctx, s.db, op, "visual_customizations", existing.ID, owner)
	}
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return insert(ctx, s.db, op, "visual_customizations", &c)
}

func (s *Store) UpdateVisualCustomization(ctx context.Context, id string, p storage.Patch) (*storage.VisualCustomization, error) {
	return update[storage.VisualCustomization](ctx, s.db, "update visual customization", "visual_customizations", id, p)
}

func (s *Store) DeleteVisualCustomization(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.db, "delete visual customization", "visual_customizations", id)
}

func (s *Store) DeleteAllVisualCustomizations(ctx context.Context, pageID string) bool {
	if _, err := s.db.Exec(ctx, `DELETE FROM visual_customizations WHERE page_id = $1`, pageID); err != nil {
		s.log.Error("delete visual customizations", "page_id", pageID, "err", err)
		return false
	}
	return true
}
