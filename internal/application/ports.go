package application

import (
	"context"
	"io"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/mailer"
)

// Geocoder resolves a free-form address (or zipcode) to a location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (entity.Location, error)
}

// FileStore persists an uploaded blob under objectPath and returns where it
// can be fetched from.
type FileStore interface {
	Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type EmailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// SearchIndex mirrors bootcamps into a full-text index. Writes are best effort.
type SearchIndex interface {
	Index(ctx context.Context, b *entity.Bootcamp) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.BootcampSummary, error)
}
