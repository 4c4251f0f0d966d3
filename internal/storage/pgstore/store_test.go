package pgstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront/internal/logx"
	"github.com/ariefcatur/go-storefront/internal/storage"
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock, New(mock, logx.Discard())
}

// rowsOf renders full table rows for the given entities.
func rowsOf[T any](vals ...T) *pgxmock.Rows {
	rows := pgxmock.NewRows(storage.Columns[T]())
	for i := range vals {
		rows.AddRow(columnValues(&vals[i])...)
	}
	return rows
}

func anyArgs(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = pgxmock.AnyArg()
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func exact(sql string) string { return "^" + regexp.QuoteMeta(sql) + "$" }

func TestInsertSQL(t *testing.T) {
	require.Equal(t,
		"INSERT INTO faqs (id, question) VALUES ($1, $2) RETURNING *",
		insertSQL("faqs", []string{"id", "question"}))
}

func TestUpdateSQL(t *testing.T) {
	sql, args := updateSQL("faqs", storage.Patch{"question": "q", "answer": "a"}, "id = ?")
	require.Equal(t, "UPDATE faqs SET answer = $1, question = $2, updated_at = $3 WHERE id = $4 RETURNING *", sql)
	require.Len(t, args, 3)
	require.Equal(t, "a", args[0])
	require.Equal(t, "q", args[1])

	sql, args = updateSQL("page_customizations", storage.Patch{}, "page_id = ? AND user_id = ?")
	require.Equal(t, "UPDATE page_customizations SET updated_at = $1 WHERE page_id = $2 AND user_id = $3 RETURNING *", sql)
	require.Len(t, args, 1)
}

func TestColumnValuesFollowColumns(t *testing.T) {
	post := storage.BlogPost{ID: "b1", Title: "Hello", AuthorName: "ignored"}
	vals := columnValues(&post)
	cols := storage.Columns[storage.BlogPost]()
	require.Len(t, vals, len(cols))
	require.Equal(t, "b1", vals[0])
	require.Equal(t, "Hello", vals[1])
}

func TestGetUserMissing(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectQuery(exact(`SELECT * FROM users WHERE id = $1`)).WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(storage.Columns[storage.User]()))

	u, err := s.GetUser(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestCreateProduct(t *testing.T) {
	mock, s := newMock(t)
	stored := storage.Product{ID: "p1", Name: "Mug", PriceCents: 1200, IsActive: true, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	mock.ExpectQuery(`^INSERT INTO products \(id, category_id, sku, name, .*\) VALUES \(\$1, .*\$15\) RETURNING \*$`).
		WithArgs(anyArgs(len(storage.Columns[storage.Product]()))...).
		WillReturnRows(rowsOf(stored))

	got, err := s.CreateProduct(context.Background(), storage.Product{Name: "Mug", PriceCents: 1200, IsActive: true})
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)
	require.Equal(t, 1200, got.PriceCents)
}

func TestUpdateReservationAllowlist(t *testing.T) {
	mock, s := newMock(t)
	stored := storage.Reservation{ID: "r1", Status: storage.ReservationConfirmed, Notes: "n"}
	mock.ExpectQuery(exact(`UPDATE reservations SET notes = $1, status = $2, updated_at = $3 WHERE id = $4 RETURNING *`)).
		WithArgs("n", storage.ReservationConfirmed, pgxmock.AnyArg(), "r1").
		WillReturnRows(rowsOf(stored))

	got, err := s.UpdateReservation(context.Background(), "r1", storage.Patch{
		"status":     storage.ReservationConfirmed,
		"notes":      "n",
		"user_id":    "someone",
		"created_at": time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, storage.ReservationConfirmed, got.Status)
}

func TestUpdateMissingRow(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectQuery(exact(`UPDATE faqs SET question = $1, updated_at = $2 WHERE id = $3 RETURNING *`)).
		WithArgs("q", pgxmock.AnyArg(), "missing").
		WillReturnRows(pgxmock.NewRows(storage.Columns[storage.Faq]()))

	got, err := s.UpdateFaq(context.Background(), "missing", storage.Patch{"question": "q"})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDeleteReportsRowsAffected(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectExec(exact(`DELETE FROM orders WHERE id = $1`)).WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(exact(`DELETE FROM orders WHERE id = $1`)).WithArgs("o1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	ok, err := s.DeleteOrder(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = s.DeleteOrder(context.Background(), "o1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestListWrapsErrors(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectQuery(`SELECT \* FROM products`).WillReturnError(errors.New("connection reset"))

	_, err := s.ListProducts(context.Background())
	require.ErrorContains(t, err, "list products: connection reset")
}

func TestListEmptyIsNotNil(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectQuery(exact(`SELECT * FROM faqs ORDER BY sort_order ASC`)).
		WillReturnRows(pgxmock.NewRows(storage.Columns[storage.Faq]()))

	rows, err := s.ListFaqs(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestListReservationsForDate(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectQuery(`WHERE \(date AT TIME ZONE 'UTC'\)::date = \$1::date AND status = \$2\s+ORDER BY date ASC`).
		WithArgs("2024-05-01", storage.ReservationConfirmed).
		WillReturnRows(rowsOf(storage.Reservation{ID: "r1", Status: storage.ReservationConfirmed}))

	rows, err := s.ListReservationsForDate(context.Background(), "2024-05-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = s.ListReservationsForDate(context.Background(), "01/05/2024")
	require.Error(t, err)
}

func TestCartWithoutFilters(t *testing.T) {
	_, s := newMock(t)
	items, err := s.ListCartItems(context.Background(), "", "")
	require.NoError(t, err)
	require.Empty(t, items)

	ok, err := s.ClearCart(context.Background(), "", "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClearCartBySessionAndUser(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectExec(exact(`DELETE FROM cart_items WHERE user_id = $1 OR session_id = $2`)).WithArgs("u1", "s1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	ok, err := s.ClearCart(context.Background(), "u1", "s1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUpdateProductStock(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectExec(exact(`UPDATE products SET stock = $1, updated_at = $2 WHERE id = $3`)).
		WithArgs(7, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := s.UpdateProductStock(context.Background(), "missing", 7)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetReservationSettingsCreatesDefaults(t *testing.T) {
	mock, s := newMock(t)
	def := storage.DefaultReservationSettings()
	def.ID = "rs1"
	mock.ExpectQuery(`SELECT \* FROM reservation_settings`).
		WillReturnRows(pgxmock.NewRows(storage.Columns[storage.ReservationSettings]()))
	mock.ExpectQuery(`^INSERT INTO reservation_settings`).
		WithArgs(anyArgs(len(storage.Columns[storage.ReservationSettings]()))...).
		WillReturnRows(rowsOf(def))

	rs, err := s.GetReservationSettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, "rs1", rs.ID)
	require.Equal(t, 60, rs.DefaultDuration)
}

func TestBlogPostsCarryAuthor(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectQuery(exact(`SELECT * FROM blog_posts WHERE slug = $1`)).WithArgs("hello").
		WillReturnRows(rowsOf(storage.BlogPost{ID: "b1", Slug: "hello"}))

	post, err := s.GetBlogPostBySlug(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, storage.BlogAuthorName, post.AuthorName)
}

func TestAdminOperationsReportFailure(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectExec(`UPDATE blog_posts SET views = views \+ 1`).WithArgs(pgxmock.AnyArg(), "b1").
		WillReturnError(errors.New("boom"))
	mock.ExpectExec(`UPDATE page_customizations SET is_active = FALSE`).WithArgs(pgxmock.AnyArg(), "home", "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(exact(`DELETE FROM visual_customizations WHERE page_id = $1`)).WithArgs("home").
		WillReturnError(errors.New("boom"))

	ctx := context.Background()
	require.False(t, s.IncrementBlogPostViews(ctx, "b1"))
	require.True(t, s.DeletePageCustomization(ctx, "home", "u1"))
	require.False(t, s.DeleteAllVisualCustomizations(ctx, "home"))
}

func TestSaveVisualCustomizationUpdatesExisting(t *testing.T) {
	mock, s := newMock(t)
	existing := storage.VisualCustomization{ID: "v1", PageID: "home", ElementSelector: "#hero", Value: "red"}
	updated := existing
	updated.Value = "blue"

	mock.ExpectQuery(`SELECT \* FROM visual_customizations WHERE element_selector = \$1 AND page_id = \$2`).
		WithArgs("#hero", "home").WillReturnRows(rowsOf(existing))
	mock.ExpectQuery(exact(`UPDATE visual_customizations SET property = $1, updated_by = $2, value = $3, updated_at = $4 WHERE id = $5 RETURNING *`)).
		WithArgs("color", pgxmock.AnyArg(), "blue", pgxmock.AnyArg(), "v1").
		WillReturnRows(rowsOf(updated))

	got, err := s.SaveVisualCustomization(context.Background(), storage.VisualCustomization{
		PageID: "home", ElementSelector: "#hero", Property: "color", Value: "blue",
	})
	require.NoError(t, err)
	require.Equal(t, "v1", got.ID)
	require.Equal(t, "blue", got.Value)
}

func TestUpdateEmailTestStatusWithoutRow(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectQuery(`SELECT \* FROM email_config`).
		WillReturnRows(pgxmock.NewRows(storage.Columns[storage.EmailConfig]()))

	require.NoError(t, s.UpdateEmailTestStatus(context.Background(), storage.EmailTestSuccess))
}

func TestCreateOrderGeneratesNumber(t *testing.T) {
	mock, s := newMock(t)
	stored := storage.Order{ID: "o1", OrderNumber: "ORD-1-ABCDE", Status: storage.OrderPending}
	mock.ExpectQuery(`^INSERT INTO orders`).
		WithArgs(anyArgs(len(storage.Columns[storage.Order]()))...).
		WillReturnRows(rowsOf(stored))

	got, err := s.CreateOrder(context.Background(), storage.Order{Status: storage.OrderPending})
	require.NoError(t, err)
	require.Equal(t, storage.OrderPending, got.Status)
}

func TestCreateVisualCustomizationRecordsUser(t *testing.T) {
	mock, s := newMock(t)
	existing := storage.VisualCustomization{ID: "v1", PageID: "home", ElementSelector: "#hero", Value: "red"}
	updated := existing
	updated.Value = "blue"
	updated.UserID = ptr("u1")

	mock.ExpectQuery(`SELECT \* FROM visual_customizations WHERE element_selector = \$1 AND page_id = \$2`).
		WithArgs("#hero", "home").WillReturnRows(rowsOf(existing))
	mock.ExpectQuery(exact(`UPDATE visual_customizations SET property = $1, user_id = $2, value = $3, updated_at = $4 WHERE id = $5 RETURNING *`)).
		WithArgs("color", ptr("u1"), "blue", pgxmock.AnyArg(), "v1").
		WillReturnRows(rowsOf(updated))

	got, err := s.CreateVisualCustomization(context.Background(), storage.VisualCustomization{
		PageID: "home", ElementSelector: "#hero", Property: "color", Value: "blue", UserID: ptr("u1"),
	})
	require.NoError(t, err)
	require.Equal(t, "u1", *got.UserID)
}

func TestTimestampPatchAcceptsDateString(t *testing.T) {
	mock, s := newMock(t)
	stored := storage.Reservation{ID: "r1", Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	mock.ExpectQuery(exact(`UPDATE reservations SET date = $1, updated_at = $2 WHERE id = $3 RETURNING *`)).
		WithArgs("2025-06-01", pgxmock.AnyArg(), "r1").
		WillReturnRows(rowsOf(stored))

	got, err := s.UpdateReservation(context.Background(), "r1", storage.Patch{"date": "2025-06-01"})
	require.NoError(t, err)
	require.Equal(t, stored.Date, got.Date)
}

func TestPageCustomizationWritesAreSingleStatements(t *testing.T) {
	mock, s := newMock(t)
	mock.ExpectQuery(exact(`UPDATE page_customizations SET settings = $1, updated_at = $2 WHERE page_id = $3 AND user_id = $4 RETURNING *`)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "home", "u1").
		WillReturnRows(rowsOf(storage.PageCustomization{ID: "p1", PageID: "home", UserID: "u1"}))
	mock.ExpectExec(exact(`UPDATE page_customizations SET is_active = FALSE, updated_at = $1 WHERE page_id = $2 AND user_id = $3`)).
		WithArgs(pgxmock.AnyArg(), "home", "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ctx := context.Background()
	got, err := s.UpdatePageCustomization(ctx, "home", "u1", storage.Patch{"settings": map[string]any{"theme": "dark"}})
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)
	require.True(t, s.DeletePageCustomization(ctx, "home", "u1"))
}
