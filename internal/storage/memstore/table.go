package memstore

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

type record[T any] struct {
	seq uint64
	val T
}

// table is one entity's rows keyed by id. Callers hold the Store lock.
// Rows are cloned on the way in and on the way out, so no caller ever holds
// memory shared with a stored row.
type table[T any] struct {
	rows map[string]*record[T]
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[string]*record[T]{}}
}

func (t *table[T]) insert(seq uint64, id string, v T) *T {
	t.rows[id] = &record[T]{seq: seq, val: clone(v)}
	out := clone(v)
	return &out
}

// replace overwrites the stored row with id, keeping its insertion order.
func (t *table[T]) replace(id string, v T) *T {
	rec, ok := t.rows[id]
	if !ok {
		return nil
	}
	rec.val = clone(v)
	out := clone(v)
	return &out
}

func (t *table[T]) get(id string) *T {
	rec, ok := t.rows[id]
	if !ok {
		return nil
	}
	v := clone(rec.val)
	return &v
}

func (t *table[T]) delete(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// deleteWhere removes every row accepted by keep.
func (t *table[T]) deleteWhere(keep func(*T) bool) int {
	n := 0
	for id, rec := range t.rows {
		if keep(&rec.val) {
			delete(t.rows, id)
			n++
		}
	}
	return n
}

// scan returns the rows accepted by keep in insertion order.
func (t *table[T]) scan(keep func(*T) bool) []T {
	recs := make([]*record[T], 0, len(t.rows))
	for _, rec := range t.rows {
		if keep == nil || keep(&rec.val) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		out = append(out, clone(rec.val))
	}
	return out
}

// find returns the earliest inserted row accepted by keep.
func (t *table[T]) find(keep func(*T) bool) *T {
	rows := t.scan(keep)
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// ids returns the ids of the rows accepted by keep.
func (t *table[T]) ids(keep func(*T) bool) []string {
	var out []string
	for id, rec := range t.rows {
		if keep(&rec.val) {
			out = append(out, id)
		}
	}
	return out
}

// patch applies p to the row and stamps updated_at. A missing row yields nil.
// The row is left untouched when any value cannot be applied.
func (t *table[T]) patch(id string, p storage.Patch, now time.Time) (*T, error) {
	rec, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	next, err := applyPatch(rec.val, storage.Mutable[T](p), now)
	if err != nil {
		return nil, err
	}
	rec.val = next
	out := clone(next)
	return &out, nil
}

// patchWhere applies p to every row accepted by keep, all or nothing, and
// returns the patched rows in insertion order.
func (t *table[T]) patchWhere(keep func(*T) bool, p storage.Patch, now time.Time) ([]T, error) {
	p = storage.Mutable[T](p)
	recs := make([]*record[T], 0)
	for _, rec := range t.rows {
		if keep(&rec.val) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	next := make([]T, len(recs))
	for i, rec := range recs {
		v, err := applyPatch(rec.val, p, now)
		if err != nil {
			return nil, err
		}
		next[i] = v
	}
	out := make([]T, len(recs))
	for i, rec := range recs {
		rec.val = next[i]
		out[i] = clone(next[i])
	}
	return out, nil
}

// timeLayouts are the string forms accepted for timestamp columns, matching
// what Postgres parses for timestamptz input. Zone-less values are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	storage.DateLayout,
}

var timeType = reflect.TypeOf(time.Time{})

// applyPatch returns a copy of v with the columns in p set and updated_at
// stamped. v itself is not modified.
func applyPatch[T any](v T, p storage.Patch, now time.Time) (T, error) {
	out := clone(v)
	rv := reflect.ValueOf(&out).Elem()
	fields := fieldIndex(rv.Type())
	for _, col := range p.Keys() {
		i, ok := fields[col]
		if !ok {
			continue
		}
		if err := assign(rv.Field(i), p[col]); err != nil {
			var zero T
			return zero, fmt.Errorf("apply patch: column %s: %w", col, err)
		}
	}
	if i, ok := fields[storage.ColumnUpdatedAt]; ok {
		rv.Field(i).Set(reflect.ValueOf(now))
	}
	return out, nil
}

// fieldIndex maps db column names to struct field indexes.
func fieldIndex(t reflect.Type) map[string]int {
	out := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if f.IsExported() && name != "" && name != "-" {
			out[name] = i
		}
	}
	return out
}

// assign stores val into field, converting the loose types a patch carries
// (strings for timestamps, float64 from JSON for integers, generic maps for
// JSON documents) the way the database driver would.
func assign(field reflect.Value, val any) error {
	ft := field.Type()
	if val == nil {
		switch ft.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
			field.Set(reflect.Zero(ft))
			return nil
		}
		return fmt.Errorf("null value for %s", ft)
	}

	base := ft
	if ft.Kind() == reflect.Pointer {
		base = ft.Elem()
	}
	if base == timeType {
		if str, ok := val.(string); ok {
			ts, err := parseTime(str)
			if err != nil {
				return err
			}
			val = ts
		}
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Pointer && ft.Kind() != reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("null value for %s", ft)
		}
		rv = rv.Elem()
	}
	switch {
	case rv.Type().AssignableTo(ft):
		field.Set(reflect.ValueOf(clone(rv.Interface())))
		return nil
	case ft.Kind() == reflect.Pointer && rv.Type().AssignableTo(base):
		p := reflect.New(base)
		p.Elem().Set(reflect.ValueOf(clone(rv.Interface())))
		field.Set(p)
		return nil
	case isScalar(rv.Kind()) && isScalar(base.Kind()) && rv.Type().ConvertibleTo(base):
		if isInt(base.Kind()) && rv.CanFloat() && rv.Float() != float64(int64(rv.Float())) {
			return fmt.Errorf("%v is not an integer", val)
		}
		if (base.Kind() == reflect.String) != (rv.Kind() == reflect.String) {
			return fmt.Errorf("cannot use %T as %s", val, ft)
		}
		c := rv.Convert(base)
		if ft.Kind() == reflect.Pointer {
			p := reflect.New(base)
			p.Elem().Set(c)
			c = p
		}
		field.Set(c)
		return nil
	}

	// JSON documents: decode through their encoded form.
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	dst := reflect.New(ft)
	if err := json.Unmarshal(raw, dst.Interface()); err != nil {
		return err
	}
	field.Set(dst.Elem())
	return nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func isScalar(k reflect.Kind) bool {
	return k == reflect.Bool || k == reflect.String || isInt(k) || k == reflect.Float32 || k == reflect.Float64
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// newestFirst orders rows by key descending; ties keep the latest insert first.
func newestFirst[T any](rows []T, key func(*T) time.Time) []T {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	sort.SliceStable(rows, func(i, j int) bool { return key(&rows[i]).After(key(&rows[j])) })
	return rows
}

// oldestFirst orders rows by key ascending; ties keep insertion order.
func oldestFirst[T any](rows []T, key func(*T) time.Time) []T {
	sort.SliceStable(rows, func(i, j int) bool { return key(&rows[i]).Before(key(&rows[j])) })
	return rows
}

// ascending orders rows by key ascending; ties keep insertion order.
func ascending[T any, K cmp.Ordered](rows []T, key func(*T) K) []T {
	sort.SliceStable(rows, func(i, j int) bool { return key(&rows[i]) < key(&rows[j]) })
	return rows
}

// descending orders rows by key descending; ties keep insertion order.
func descending[T any, K cmp.Ordered](rows []T, key func(*T) K) []T {
	sort.SliceStable(rows, func(i, j int) bool { return key(&rows[i]) > key(&rows[j]) })
	return rows
}
