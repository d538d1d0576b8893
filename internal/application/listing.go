package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/devcamper-api/internal/domain/query"
)

// Page is one window of a listing plus its pagination metadata.
type Page[T any] struct {
	Items      []T
	Pagination query.Pagination
}

// listPage runs the page query and the count (same filters) concurrently.
func listPage[T any](
	ctx context.Context,
	d *query.Descriptor,
	list func(context.Context, *query.Descriptor) ([]T, error),
	count func(context.Context, *query.Descriptor) (int, error),
) (Page[T], error) {
	var (
		items []T
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = list(gctx, d)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = count(gctx, d)
		return err
	})
	if err := g.Wait(); err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Pagination: query.Paginate(total, d.Page, d.Limit)}, nil
}
