package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) registerCatalog(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/categories/{id}/products", h.listCategoryProducts)
	r.Get("/faqs", h.listFaqs)
	r.Get("/blog/{slug}", h.getBlogPost)
}

// listProducts serves every product, or only active/featured ones when
// ?filter=active or ?filter=featured is given.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	switch r.URL.Query().Get("filter") {
	case "":
		ps, err := h.Store.ListProducts(ctx)
		respondList(w, ps, err)
	case "active":
		ps, err := h.Store.ListActiveProducts(ctx)
		respondList(w, ps, err)
	case "featured":
		ps, err := h.Store.ListFeaturedProducts(ctx)
		respondList(w, ps, err)
	default:
		writeError(w, http.StatusBadRequest, "unknown filter")
	}
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Store.GetProduct(ctx, chi.URLParam(r, "id"))
	respond(w, p, err)
}

func (h *Handler) listCategoryProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Store.ListProductsByCategory(ctx, chi.URLParam(r, "id"))
	respondList(w, ps, err)
}

func (h *Handler) listFaqs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if cat := r.URL.Query().Get("category"); cat != "" {
		fs, err := h.Store.ListFaqsByCategory(ctx, cat)
		respondList(w, fs, err)
		return
	}
	fs, err := h.Store.ListFaqs(ctx)
	respondList(w, fs, err)
}

// getBlogPost counts a view for every successful read.
func (h *Handler) getBlogPost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	post, err := h.Store.GetBlogPostBySlug(ctx, chi.URLParam(r, "slug"))
	if err == nil && post != nil && h.Store.IncrementBlogPostViews(ctx, post.ID) {
		post.Views++
	}
	respond(w, post, err)
}
