package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// Table describes how an entity maps to a Postgres table.
// Columns lists the writable columns besides id and the bookkeeping dates.
type Table struct {
	Name    string
	Columns []string
}

var (
	RidesTable = Table{Name: "rides", Columns: []string{
		"ride_code", "public_access_token", "guest_name", "guest_room", "guest_phone",
		"pickup_location", "destination", "special_requests", "priority", "status",
		"assigned_driver", "vehicle_number", "pending_timestamp", "assigned_timestamp",
		"in_progress_timestamp", "completed_timestamp", "completed_time", "access_expires_at",
	}}
	VehiclesTable = Table{Name: "vehicles", Columns: []string{
		"shuttle_number", "capacity", "current_mileage", "fuel_level", "status",
		"current_driver", "location_lat", "location_lng", "location_updated",
	}}
	DriversTable = Table{Name: "drivers", Columns: []string{
		"full_name", "phone", "status", "vehicle_number",
	}}
	AlertsTable = Table{Name: "emergency_alerts", Columns: []string{
		"alert_type", "message", "priority", "status", "vehicle_number", "ride_id", "resolved_at",
	}}
	RatingsTable = Table{Name: "ratings", Columns: []string{
		"ride_id", "driver_id", "vehicle_id", "rating", "driver_rating", "vehicle_rating",
		"punctuality_rating", "would_recommend", "comments", "flagged_for_review",
	}}
)

// Schema creates the tables used by the Postgres store
const Schema = `
CREATE TABLE IF NOT EXISTS rides (
	id TEXT PRIMARY KEY,
	ride_code TEXT NOT NULL DEFAULT '',
	public_access_token TEXT NOT NULL DEFAULT '',
	guest_name TEXT NOT NULL DEFAULT '',
	guest_room TEXT NOT NULL DEFAULT '',
	guest_phone TEXT NOT NULL DEFAULT '',
	pickup_location TEXT NOT NULL DEFAULT '',
	destination TEXT NOT NULL DEFAULT '',
	special_requests TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'normal',
	status TEXT NOT NULL DEFAULT 'pending',
	assigned_driver TEXT NOT NULL DEFAULT '',
	vehicle_number TEXT NOT NULL DEFAULT '',
	pending_timestamp TIMESTAMPTZ,
	assigned_timestamp TIMESTAMPTZ,
	in_progress_timestamp TIMESTAMPTZ,
	completed_timestamp TIMESTAMPTZ,
	completed_time TIMESTAMPTZ,
	access_expires_at TIMESTAMPTZ,
	created_date TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_date TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_rides_status ON rides (status);
CREATE INDEX IF NOT EXISTS idx_rides_token ON rides (public_access_token);

CREATE TABLE IF NOT EXISTS vehicles (
	id TEXT PRIMARY KEY,
	shuttle_number TEXT NOT NULL UNIQUE,
	capacity INTEGER NOT NULL DEFAULT 0,
	current_mileage DOUBLE PRECISION NOT NULL DEFAULT 0,
	fuel_level DOUBLE PRECISION NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'offline',
	current_driver TEXT NOT NULL DEFAULT '',
	location_lat DOUBLE PRECISION NOT NULL DEFAULT 0,
	location_lng DOUBLE PRECISION NOT NULL DEFAULT 0,
	location_updated TIMESTAMPTZ,
	created_date TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_date TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS drivers (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'signed-out',
	vehicle_number TEXT NOT NULL DEFAULT '',
	created_date TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_date TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS emergency_alerts (
	id TEXT PRIMARY KEY,
	alert_type TEXT NOT NULL DEFAULT 'other',
	message TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'normal',
	status TEXT NOT NULL DEFAULT 'active',
	vehicle_number TEXT NOT NULL DEFAULT '',
	ride_id TEXT NOT NULL DEFAULT '',
	resolved_at TIMESTAMPTZ,
	created_date TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_date TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ratings (
	id TEXT PRIMARY KEY,
	ride_id TEXT NOT NULL UNIQUE,
	driver_id TEXT NOT NULL DEFAULT '',
	vehicle_id TEXT NOT NULL DEFAULT '',
	rating INTEGER NOT NULL,
	driver_rating INTEGER NOT NULL DEFAULT 0,
	vehicle_rating INTEGER NOT NULL DEFAULT 0,
	punctuality_rating INTEGER NOT NULL DEFAULT 0,
	would_recommend BOOLEAN NOT NULL DEFAULT false,
	comments TEXT NOT NULL DEFAULT '',
	flagged_for_review BOOLEAN NOT NULL DEFAULT false,
	created_date TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_date TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate applies Schema
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// PostgresRepo is an entity store backed by one Postgres table
type PostgresRepo[T fleet.Entity] struct {
	db       *sqlx.DB
	table    Table
	writable map[string]bool
}

// NewPostgresRepo creates a repository over table
func NewPostgresRepo[T fleet.Entity](db *sqlx.DB, table Table) *PostgresRepo[T] {
	writable := make(map[string]bool, len(table.Columns))
	for _, c := range table.Columns {
		writable[c] = true
	}
	return &PostgresRepo[T]{db: db, table: table, writable: writable}
}

// NewPostgresStore creates a Store backed by Postgres
func NewPostgresStore(db *sqlx.DB) *fleet.Store {
	return &fleet.Store{
		Rides:    NewPostgresRepo[models.Ride](db, RidesTable),
		Vehicles: NewPostgresRepo[models.Vehicle](db, VehiclesTable),
		Drivers:  NewPostgresRepo[models.Driver](db, DriversTable),
		Alerts:   NewPostgresRepo[models.EmergencyAlert](db, AlertsTable),
		Ratings:  NewPostgresRepo[models.Rating](db, RatingsTable),
	}
}

func (r *PostgresRepo[T]) List(ctx context.Context, sortBy models.Sort, limit int) ([]T, error) {
	return r.Filter(ctx, nil, sortBy, limit)
}

func (r *PostgresRepo[T]) Filter(ctx context.Context, query models.Query, sortBy models.Sort, limit int) ([]T, error) {
	var (
		sb    strings.Builder
		args  []interface{}
		conds []string
	)
	fmt.Fprintf(&sb, "SELECT * FROM %s", r.table.Name)

	for _, c := range query {
		if !r.queryable(c.Field) {
			return nil, fmt.Errorf("unknown filter field %q on %s", c.Field, r.table.Name)
		}
		switch c.Op {
		case models.OpIn:
			args = append(args, pq.Array(c.Values))
			conds = append(conds, fmt.Sprintf("%s = ANY($%d)", c.Field, len(args)))
		default:
			args = append(args, sqlValue(c.Value))
			conds = append(conds, fmt.Sprintf("%s = $%d", c.Field, len(args)))
		}
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	if field, desc := sortBy.Field(); field != "" {
		if !r.queryable(field) {
			return nil, fmt.Errorf("unknown sort field %q on %s", field, r.table.Name)
		}
		direction := "ASC"
		if desc {
			direction = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s NULLS LAST", field, direction)
	} else {
		sb.WriteString(" ORDER BY id")
	}
	if limit > 0 {
		args = append(args, limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	var out []T
	if err := r.db.SelectContext(ctx, &out, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table.Name, err)
	}
	return out, nil
}

// Create inserts entity, generating an id when it has none
func (r *PostgresRepo[T]) Create(ctx context.Context, entity T) (T, error) {
	var out T
	fields := r.db.Mapper.FieldMap(reflect.ValueOf(&entity))

	id := entity.EntityID()
	if id == "" {
		id = uuid.New().String()
	}

	cols := append([]string{"id"}, r.table.Columns...)
	placeholders := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	args[0] = id
	placeholders[0] = "$1"
	for i, col := range r.table.Columns {
		f, ok := fields[col]
		if !ok {
			return out, fmt.Errorf("column %s has no field on %T", col, entity)
		}
		args[i+1] = sqlValue(f.Interface())
		placeholders[i+1] = fmt.Sprintf("$%d", i+2)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		r.table.Name, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&out); err != nil {
		return out, fmt.Errorf("failed to insert into %s: %w", r.table.Name, err)
	}
	return out, nil
}

func (r *PostgresRepo[T]) Update(ctx context.Context, id string, fields models.Fields) (T, error) {
	var out T

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !r.writable[k] {
			return out, fmt.Errorf("column %q is not writable on %s", k, r.table.Name)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys)+1)
	args := make([]interface{}, 0, len(keys)+1)
	for _, k := range keys {
		args = append(args, sqlValue(fields[k]))
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	sets = append(sets, "updated_date = now()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		r.table.Name, strings.Join(sets, ", "), len(args))
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&out); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, fmt.Errorf("%s %s: %w", r.table.Name, id, fleet.ErrNotFound)
		}
		return out, fmt.Errorf("failed to update %s: %w", r.table.Name, err)
	}
	return out, nil
}

func (r *PostgresRepo[T]) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table.Name), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.table.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.table.Name, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", r.table.Name, id, fleet.ErrNotFound)
	}
	return nil
}

func (r *PostgresRepo[T]) queryable(field string) bool {
	switch field {
	case "id", "created_date", "updated_date":
		return true
	}
	return r.writable[field]
}

// sqlValue unwraps named string types such as models.RideStatus
func sqlValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String && rv.Type() != reflect.TypeOf("") {
		return rv.String()
	}
	return v
}
