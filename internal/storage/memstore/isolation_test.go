package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

func TestRowsShareNoMemoryWithCallers(t *testing.T) {
	ctx := context.Background()
	s := New()

	in := storage.Product{Name: "Mug", Images: []string{"a.png"}}
	created, err := s.CreateProduct(ctx, in)
	require.NoError(t, err)
	in.Images[0] = "changed-input.png"
	created.Images[0] = "changed-created.png"

	got, err := s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"a.png"}, got.Images)

	got.Images[0] = "changed-read.png"
	list, err := s.ListProducts(ctx)
	require.NoError(t, err)
	list[0].Images = append(list[0].Images[:0], "changed-list.png")

	again, err := s.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"a.png"}, again.Images)
}

func TestSettingsReadIsACopy(t *testing.T) {
	ctx := context.Background()
	s := New()

	rs, err := s.GetReservationSettings(ctx)
	require.NoError(t, err)
	rs.AllowedServices[0] = "changed"
	rs.BusinessHours["monday"] = storage.DayHours{}

	again, err := s.GetReservationSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, storage.DefaultReservationSettings().AllowedServices, again.AllowedServices)
	require.True(t, again.BusinessHours["monday"].Enabled)
}

func TestPatchedValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := New()
	o, err := s.CreateOrder(ctx, storage.Order{})
	require.NoError(t, err)

	addr := map[string]any{"city": "Lima"}
	updated, err := s.UpdateOrder(ctx, o.ID, storage.Patch{"shipping_address": addr})
	require.NoError(t, err)
	addr["city"] = "changed"
	updated.ShippingAddress["city"] = "changed"

	got, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, "Lima", got.ShippingAddress["city"])
}

func TestConcurrentReadersMutatingResults(t *testing.T) {
	ctx := context.Background()
	s := New()
	sc, err := s.CreateSiteConfig(ctx, storage.SiteConfig{Settings: map[string]any{"theme": "light"}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.GetSiteConfig(ctx)
			if err == nil && got != nil {
				got.Settings["theme"] = "dark"
			}
		}()
	}
	wg.Wait()

	got, err := s.GetSiteConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, sc.ID, got.ID)
	require.Equal(t, "light", got.Settings["theme"])
}

func TestPatchAcceptsTimestampStrings(t *testing.T) {
	ctx := context.Background()
	s := New()
	r, err := s.CreateReservation(ctx, storage.Reservation{Name: "Ana"})
	require.NoError(t, err)

	for in, want := range map[string]time.Time{
		"2025-06-01":                time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		"2025-06-01 18:30:00":       time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC),
		"2025-06-01T18:30:00+02:00": time.Date(2025, 6, 1, 16, 30, 0, 0, time.UTC),
	} {
		got, err := s.UpdateReservation(ctx, r.ID, storage.Patch{"date": in})
		require.NoError(t, err, in)
		require.True(t, want.Equal(got.Date), in)
	}
}

func TestPatchConvertsLooseTypes(t *testing.T) {
	ctx := context.Background()
	s := New()
	p, err := s.CreateProduct(ctx, storage.Product{Name: "Mug"})
	require.NoError(t, err)

	got, err := s.UpdateProduct(ctx, p.ID, storage.Patch{
		"stock":  float64(7),
		"images": []any{"a.png", "b.png"},
	})
	require.NoError(t, err)
	require.Equal(t, 7, got.Stock)
	require.Equal(t, []string{"a.png", "b.png"}, got.Images)

	o, err := s.CreateOrder(ctx, storage.Order{})
	require.NoError(t, err)
	updated, err := s.UpdateOrder(ctx, o.ID, storage.Patch{"status": "shipped"})
	require.NoError(t, err)
	require.Equal(t, storage.OrderShipped, updated.Status)
}

func TestRejectedPatchLeavesRowsUntouched(t *testing.T) {
	ctx := context.Background()
	s := New()
	p, err := s.CreateProduct(ctx, storage.Product{Name: "Mug", Stock: 3})
	require.NoError(t, err)

	_, err = s.UpdateProduct(ctx, p.ID, storage.Patch{"name": "Cup", "stock": "lots"})
	require.Error(t, err)
	_, err = s.UpdateProduct(ctx, p.ID, storage.Patch{"name": "Cup", "stock": 1.5})
	require.Error(t, err)
	_, err = s.UpdateProduct(ctx, p.ID, storage.Patch{"name": nil})
	require.Error(t, err)

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Mug", got.Name)
	require.Equal(t, 3, got.Stock)
	require.Equal(t, p.UpdatedAt, got.UpdatedAt)

	for i := 0; i < 2; i++ {
		_, err := s.CreatePageCustomization(ctx, storage.PageCustomization{PageID: "home", UserID: "u1", IsActive: true})
		require.NoError(t, err)
	}
	_, err = s.UpdatePageCustomization(ctx, "home", "u1", storage.Patch{"settings": "not a document", "is_active": false})
	require.Error(t, err)
	rows, err := s.ListPageCustomizations(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestDeletePageCustomizationStampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := New()
	c, err := s.CreatePageCustomization(ctx, storage.PageCustomization{PageID: "home", UserID: "u1", IsActive: true})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	require.True(t, s.DeletePageCustomization(ctx, "home", "u1"))

	rows := s.pageCustomizations.scan(nil)
	require.Len(t, rows, 1)
	require.False(t, rows[0].IsActive)
	require.True(t, rows[0].UpdatedAt.After(c.UpdatedAt))
}

func TestCreateVisualCustomizationUpsertsUser(t *testing.T) {
	ctx := context.Background()
	s := New()
	u1, u2, admin := "u1", "u2", "admin"

	first, err := s.CreateVisualCustomization(ctx, storage.VisualCustomization{
		PageID: "home", ElementSelector: "#hero", Property: "color", Value: "red", UserID: &u1,
	})
	require.NoError(t, err)
	_, err = s.SaveVisualCustomization(ctx, storage.VisualCustomization{
		PageID: "home", ElementSelector: "#hero", Property: "color", Value: "green", UpdatedBy: &admin,
	})
	require.NoError(t, err)
	second, err := s.CreateVisualCustomization(ctx, storage.VisualCustomization{
		PageID: "home", ElementSelector: "#hero", Property: "color", Value: "blue", UserID: &u2,
	})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "blue", second.Value)
	require.Equal(t, "u2", *second.UserID)
	require.Equal(t, "admin", *second.UpdatedBy)
}

func TestDeleteOrderDropsItems(t *testing.T) {
	st := New()
	ctx := context.Background()
	o, err := st.CreateOrder(ctx, storage.Order{Status: storage.OrderPending})
	require.NoError(t, err)
	_, err = st.CreateOrderItem(ctx, storage.OrderItem{OrderID: o.ID, ProductID: "p", Quantity: 1})
	require.NoError(t, err)

	ok, err := st.DeleteOrder(ctx, o.ID)
	require.NoError(t, err)
	require.True(t, ok)
	items, err := st.ListOrderItems(ctx, o.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}
