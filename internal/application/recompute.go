package application

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/domain/repository"
)

// Aggregate names a derived bootcamp field kept in sync with its children.
type Aggregate int

const (
	AverageCost Aggregate = iota
	AverageRating
)

func (a Aggregate) String() string {
	if a == AverageRating {
		return "averageRating"
	}
	return "averageCost"
}

// Recomputer refreshes bootcamp aggregates after course or review writes.
// Triggered runs are detached from the request; failures are logged only.
type Recomputer struct {
	Bootcamps repository.BootcampRepository
	Courses   repository.CourseRepository
	Reviews   repository.ReviewRepository
	Logger    *logrus.Logger
	Timeout   time.Duration

	wg sync.WaitGroup
}

func NewRecomputer(b repository.BootcampRepository, c repository.CourseRepository, r repository.ReviewRepository, logger *logrus.Logger, timeout time.Duration) *Recomputer {
	return &Recomputer{Bootcamps: b, Courses: c, Reviews: r, Logger: logger, Timeout: timeout}
}

// Trigger schedules a recompute of agg for each distinct bootcamp id.
func (r *Recomputer) Trigger(agg Aggregate, bootcampIDs ...string) {
	seen := make(map[string]struct{}, len(bootcampIDs))
	for _, id := range bootcampIDs {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		r.wg.Add(1)
		go func(id string) {
			defer r.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
			defer cancel()
			if err := r.Recompute(ctx, agg, id); err != nil {
				r.Logger.WithError(err).WithFields(logrus.Fields{
					"bootcamp_id": id,
					"aggregate":   agg.String(),
				}).Error("aggregate recompute failed")
			}
		}(id)
	}
}

// Wait blocks until every triggered recompute has finished. Used on shutdown and in tests.
func (r *Recomputer) Wait() { r.wg.Wait() }

// Recompute reads the children of bootcampID and writes the aggregate.
// Running it twice without intervening writes yields the same value.
func (r *Recomputer) Recompute(ctx context.Context, agg Aggregate, bootcampID string) error {
	switch agg {
	case AverageRating:
		avg, err := r.Reviews.AverageRating(ctx, bootcampID)
		if err != nil {
			return err
		}
		return r.Bootcamps.SetAverageRating(ctx, bootcampID, RoundRating(avg))
	default:
		avg, err := r.Courses.AverageTuition(ctx, bootcampID)
		if err != nil {
			return err
		}
		return r.Bootcamps.SetAverageCost(ctx, bootcampID, RoundCost(avg))
	}
}

// RoundCost rounds a mean tuition up to the next multiple of 10.
func RoundCost(avg *float64) *int {
	if avg == nil {
		return nil
	}
	v := int(math.Ceil(*avg/10) * 10)
	return &v
}

// RoundRating floors a mean rating.
func RoundRating(avg *float64) *int {
	if avg == nil {
		return nil
	}
	v := int(math.Floor(*avg))
	return &v
}
