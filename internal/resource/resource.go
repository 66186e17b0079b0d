// Package resource is the REST client shared by every CPMS collection.
package resource

import (
	"context"
	"errors"
	"fmt"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/envelope"
	"cpmsdash/internal/models"
)

var ErrUnsupported = errors.New("operation not supported by this resource")

// Spec describes how a collection is addressed and how its mutation bodies
// are shaped, e.g. Path "/companies", IDField "company_id", DataField "company_data".
type Spec struct {
	Path      string
	IDField   string
	DataField string
	// RawCreate sends the create form unwrapped.
	RawCreate bool
	NoUpdate  bool
	NoDelete  bool
}

// Resource is a typed client for one collection: T is the record, C the
// create form and U the update form.
type Resource[T, C, U any] struct {
	api  *apiclient.Client
	spec Spec
}

func New[T, C, U any](api *apiclient.Client, spec Spec) *Resource[T, C, U] {
	return &Resource[T, C, U]{api: api, spec: spec}
}

func (r *Resource[T, C, U]) Spec() Spec { return r.spec }

func (r *Resource[T, C, U]) itemPath(id int) string {
	return fmt.Sprintf("%s/%d", r.spec.Path, id)
}

func (r *Resource[T, C, U]) GetAll(ctx context.Context) (*envelope.Response[[]T], error) {
	return apiclient.Get[[]T](ctx, r.api, r.spec.Path)
}

func (r *Resource[T, C, U]) GetByID(ctx context.Context, id int) (*envelope.Response[T], error) {
	return apiclient.Get[T](ctx, r.api, r.itemPath(id))
}

// ListBy fetches the records related to another entity, e.g. /chargesessions/driver/9.
func (r *Resource[T, C, U]) ListBy(ctx context.Context, relation string, id int) (*envelope.Response[[]T], error) {
	return apiclient.Get[[]T](ctx, r.api, fmt.Sprintf("%s/%s/%d", r.spec.Path, relation, id))
}

// GetBy fetches the single record related to another entity, e.g. /rfidcards/driver/9.
func (r *Resource[T, C, U]) GetBy(ctx context.Context, relation string, id int) (*envelope.Response[T], error) {
	return apiclient.Get[T](ctx, r.api, fmt.Sprintf("%s/%s/%d", r.spec.Path, relation, id))
}

func (r *Resource[T, C, U]) Create(ctx context.Context, data C) (*envelope.Response[T], error) {
	if r.spec.RawCreate {
		return apiclient.Post[C, T](ctx, r.api, r.spec.Path, data)
	}
	return apiclient.Post[map[string]any, T](ctx, r.api, r.spec.Path, map[string]any{r.spec.DataField: data})
}

// Update fills the identifying field from id.
func (r *Resource[T, C, U]) Update(ctx context.Context, id int, data U) (*envelope.Response[T], error) {
	if r.spec.NoUpdate {
		return nil, ErrUnsupported
	}
	body := map[string]any{r.spec.IDField: id, r.spec.DataField: data}
	return apiclient.Put[map[string]any, T](ctx, r.api, r.itemPath(id), body)
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id int) (*envelope.Response[models.Deleted], error) {
	if r.spec.NoDelete {
		return nil, ErrUnsupported
	}
	body := map[string]any{r.spec.IDField: id}
	return apiclient.Delete[map[string]any, models.Deleted](ctx, r.api, r.itemPath(id), body)
}
