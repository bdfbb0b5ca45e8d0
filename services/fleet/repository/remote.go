package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	httpclient "github.com/piresc/shuttlefleet/internal/pkg/http"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// RemoteRepo is an entity store reached through the platform REST API:
//
//	GET    /entities/{name}?q={query}&sort={sort}&limit={n}
//	POST   /entities/{name}
//	PUT    /entities/{name}/{id}
//	DELETE /entities/{name}/{id}
type RemoteRepo[T fleet.Entity] struct {
	client *httpclient.APIKeyClient
	name   string
}

// NewRemoteRepo creates a repository for the named entity collection
func NewRemoteRepo[T fleet.Entity](client *httpclient.APIKeyClient, name string) *RemoteRepo[T] {
	return &RemoteRepo[T]{client: client, name: name}
}

// NewRemoteStore creates a Store backed by the platform API
func NewRemoteStore(client *httpclient.APIKeyClient) *fleet.Store {
	return &fleet.Store{
		Rides:    NewRemoteRepo[models.Ride](client, "Ride"),
		Vehicles: NewRemoteRepo[models.Vehicle](client, "Vehicle"),
		Drivers:  NewRemoteRepo[models.Driver](client, "Driver"),
		Alerts:   NewRemoteRepo[models.EmergencyAlert](client, "EmergencyAlert"),
		Ratings:  NewRemoteRepo[models.Rating](client, "Rating"),
	}
}

func (r *RemoteRepo[T]) List(ctx context.Context, sortBy models.Sort, limit int) ([]T, error) {
	return r.Filter(ctx, nil, sortBy, limit)
}

func (r *RemoteRepo[T]) Filter(ctx context.Context, query models.Query, sortBy models.Sort, limit int) ([]T, error) {
	params := url.Values{}
	if len(query) > 0 {
		q, err := json.Marshal(query)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s query: %w", r.name, err)
		}
		params.Set("q", string(q))
	}
	if sortBy != models.SortNone {
		params.Set("sort", string(sortBy))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var out []T
	if err := r.client.GetJSON(ctx, r.collection(), params, &out); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.name, err)
	}
	return out, nil
}

func (r *RemoteRepo[T]) Create(ctx context.Context, entity T) (T, error) {
	var out T
	if err := r.client.PostJSON(ctx, r.collection(), entity, &out); err != nil {
		return out, fmt.Errorf("failed to create %s: %w", r.name, err)
	}
	return out, nil
}

func (r *RemoteRepo[T]) Update(ctx context.Context, id string, fields models.Fields) (T, error) {
	var out T
	if err := r.client.PutJSON(ctx, r.item(id), fields, &out); err != nil {
		return out, r.wrap("update", id, err)
	}
	return out, nil
}

func (r *RemoteRepo[T]) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, r.item(id)); err != nil {
		return r.wrap("delete", id, err)
	}
	return nil
}

func (r *RemoteRepo[T]) collection() string {
	return "/entities/" + r.name
}

func (r *RemoteRepo[T]) item(id string) string {
	return r.collection() + "/" + url.PathEscape(id)
}

func (r *RemoteRepo[T]) wrap(op, id string, err error) error {
	if httpclient.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%s %s: %w", r.name, id, fleet.ErrNotFound)
	}
	return fmt.Errorf("failed to %s %s %s: %w", op, r.name, id, err)
}
