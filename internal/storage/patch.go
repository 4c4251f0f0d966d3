package storage

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Patch is a partial update keyed by column name.
type Patch map[string]any

// Columns managed by the access layer. Callers cannot set them through a Patch.
const (
	ColumnID        = "id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
)

// ReservationMutableFields is the allowlist applied to reservation updates.
var ReservationMutableFields = []string{"name", "email", "phone", "service", "date", "time_slot", "status", "notes"}

var columnCache sync.Map // reflect.Type -> []string

// Columns returns the stored column names of T in declaration order, taken
// from its db struct tags. Fields tagged db:"-" are skipped.
func Columns[T any]() []string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := columnCache.Load(t); ok {
		return cached.([]string)
	}
	cols := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
	}
	columnCache.Store(t, cols)
	return cols
}

// Only returns the subset of p whose keys are listed.
func (p Patch) Only(keys ...string) Patch {
	out := make(Patch, len(keys))
	for _, k := range keys {
		if v, ok := p[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Without returns p minus the listed keys.
func (p Patch) Without(keys ...string) Patch {
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Keys returns the patch keys sorted, so generated statements are stable.
func (p Patch) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Mutable keeps the keys of p that are columns of T, minus the managed
// columns. Both backends pass every update through it.
func Mutable[T any](p Patch) Patch {
	return p.Only(Columns[T]()...).Without(ColumnID, ColumnCreatedAt, ColumnUpdatedAt)
}
