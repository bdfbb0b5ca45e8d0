package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// MemoryRepo is an in-process entity store used for demo mode and tests.
// Records are kept as decoded JSON objects so queries address the same
// field names as the remote and Postgres stores.
type MemoryRepo[T fleet.Entity] struct {
	mu      sync.RWMutex
	records map[string]map[string]interface{}
	now     func() time.Time
}

// NewMemoryRepo creates an empty in-memory repository
func NewMemoryRepo[T fleet.Entity]() *MemoryRepo[T] {
	return &MemoryRepo[T]{
		records: make(map[string]map[string]interface{}),
		now:     models.Now,
	}
}

// NewMemoryStore creates a Store backed entirely by memory
func NewMemoryStore() *fleet.Store {
	return &fleet.Store{
		Rides:    NewMemoryRepo[models.Ride](),
		Vehicles: NewMemoryRepo[models.Vehicle](),
		Drivers:  NewMemoryRepo[models.Driver](),
		Alerts:   NewMemoryRepo[models.EmergencyAlert](),
		Ratings:  NewMemoryRepo[models.Rating](),
	}
}

func (r *MemoryRepo[T]) List(ctx context.Context, sortBy models.Sort, limit int) ([]T, error) {
	return r.Filter(ctx, nil, sortBy, limit)
}

func (r *MemoryRepo[T]) Filter(ctx context.Context, query models.Query, sortBy models.Sort, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]map[string]interface{}, 0, len(r.records))
	for _, rec := range r.records {
		if matches(rec, query) {
			matched = append(matched, rec)
		}
	}
	r.mu.RUnlock()

	sortRecords(matched, sortBy)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]T, 0, len(matched))
	for _, rec := range matched {
		entity, err := decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// Create stores entity. A missing id is generated; the bookkeeping dates are always stamped.
func (r *MemoryRepo[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	rec, err := encode(entity)
	if err != nil {
		return zero, err
	}
	id, _ := rec["id"].(string)
	if id == "" {
		id = uuid.New().String()
		rec["id"] = id
	}
	now := r.now().Format(time.RFC3339Nano)
	rec["created_date"] = now
	rec["updated_date"] = now

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[id]; exists {
		return zero, fmt.Errorf("entity %s already exists", id)
	}
	r.records[id] = rec
	return decode[T](rec)
}

func (r *MemoryRepo[T]) Update(ctx context.Context, id string, fields models.Fields) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	patch, err := encode(fields)
	if err != nil {
		return zero, err
	}
	delete(patch, "id")

	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.records[id]
	if !ok {
		return zero, fmt.Errorf("entity %s: %w", id, fleet.ErrNotFound)
	}

	next := make(map[string]interface{}, len(current)+len(patch))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range patch {
		if v == nil {
			delete(next, k)
			continue
		}
		next[k] = v
	}
	next["updated_date"] = r.now().Format(time.RFC3339Nano)

	entity, err := decode[T](next)
	if err != nil {
		return zero, err
	}
	r.records[id] = next
	return entity, nil
}

func (r *MemoryRepo[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return fmt.Errorf("entity %s: %w", id, fleet.ErrNotFound)
	}
	delete(r.records, id)
	return nil
}

func encode(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	out := make(map[string]interface{})
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	return out, nil
}

func decode[T any](rec map[string]interface{}) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("failed to decode entity: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode entity: %w", err)
	}
	return out, nil
}

func matches(rec map[string]interface{}, query models.Query) bool {
	for _, c := range query {
		got, ok := rec[c.Field]
		value := ""
		if ok && got != nil {
			value = fmt.Sprint(got)
		}
		switch c.Op {
		case models.OpIn:
			found := false
			for _, want := range c.Values {
				if value == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			if value != fmt.Sprint(c.Value) {
				return false
			}
		}
	}
	return true
}

// sortRecords orders by the sort field. Missing values sort last in both directions.
func sortRecords(recs []map[string]interface{}, sortBy models.Sort) {
	field, desc := sortBy.Field()
	if field == "" {
		sort.SliceStable(recs, func(i, j int) bool {
			return fmt.Sprint(recs[i]["id"]) < fmt.Sprint(recs[j]["id"])
		})
		return
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, aok := recs[i][field]
		b, bok := recs[j][field]
		switch {
		case !aok || a == nil:
			return false
		case !bok || b == nil:
			return true
		}
		cmp := compareValues(a, b)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareValues(a, b interface{}) int {
	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}

	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	if at, err := time.Parse(time.RFC3339Nano, as); err == nil {
		if bt, err := time.Parse(time.RFC3339Nano, bs); err == nil {
			return at.Compare(bt)
		}
	}
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}
