package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/ecoleta/internal/metrics"
	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/UnknownOlympus/ecoleta/internal/repository"
	"github.com/UnknownOlympus/ecoleta/internal/upstream"
	"golang.org/x/sync/errgroup"
)

// ItemLister lists the collection items of the points API.
type ItemLister interface {
	ListItems(ctx context.Context) ([]models.Item, error)
}

// RegionLister lists states and the cities of a state.
type RegionLister interface {
	ListStates(ctx context.Context) ([]models.State, error)
	ListCities(ctx context.Context, stateID int) ([]models.City, error)
}

// PointCreator creates a collection point from a submission.
type PointCreator interface {
	Create(ctx context.Context, sub models.Submission) (int, error)
}

// Locator resolves the initial position of the map.
type Locator interface {
	Locate(ctx context.Context, hint models.PositionHint) models.Coordinates
}

// Submission outcomes used as metric labels.
const (
	statusDelivered   = "delivered"
	statusQueued      = "queued"
	statusFailed      = "failed"
	statusRedelivered = "redelivered"
)

// PointService feeds the create-point form and submits it.
type PointService struct {
	log     *slog.Logger         // Logger for logging service activities
	items   ItemLister           // Items catalog of the points API
	regions RegionLister         // IBGE states and cities
	points  PointCreator         // Terminal write to the points API
	locator Locator              // Initial position resolution
	outbox  repository.Interface // Outbox for failed submissions, nil when disabled
	metrics *metrics.Metrics     // Metrics for tracking upstream calls and submissions
}

// NewPointService creates a PointService. outbox may be nil, in which case
// failed submissions are reported to the caller and not kept.
func NewPointService(
	log *slog.Logger,
	items ItemLister,
	regions RegionLister,
	points PointCreator,
	locator Locator,
	outbox repository.Interface,
	metrics *metrics.Metrics,
) *PointService {
	return &PointService{
		log:     log,
		items:   items,
		regions: regions,
		points:  points,
		locator: locator,
		outbox:  outbox,
		metrics: metrics,
	}
}

// LoadPage fetches everything the form is rendered from. The items, states,
// position and (when a state is selected) cities are fetched concurrently
// with no ordering between them; the first failing catalog fails the page.
func (ps *PointService) LoadPage(ctx context.Context, query models.PageQuery) (*models.Page, error) {
	page := &models.Page{}
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		items, err := ps.Items(gctx)
		page.Items = items
		return err
	})
	group.Go(func() error {
		states, err := ps.States(gctx)
		page.States = states
		return err
	})
	group.Go(func() error {
		cities, err := ps.Cities(gctx, query.StateID)
		page.Cities = cities
		return err
	})
	group.Go(func() error {
		page.Position = ps.Locate(gctx, query.Hint)
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return page, nil
}

// Items returns the items catalog.
func (ps *PointService) Items(ctx context.Context) ([]models.Item, error) {
	start := time.Now()
	items, err := ps.items.ListItems(ctx)
	ps.observe(metrics.UpstreamItems, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

// States returns the states ordered by name.
func (ps *PointService) States(ctx context.Context) ([]models.State, error) {
	start := time.Now()
	states, err := ps.regions.ListStates(ctx)
	ps.observe(metrics.UpstreamIBGE, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}

	return states, nil
}

// Cities returns the cities of the state. Each call is independent: a newer
// call does not cancel an older one, callers cancel through ctx.
func (ps *PointService) Cities(ctx context.Context, stateID int) ([]models.City, error) {
	start := time.Now()
	cities, err := ps.regions.ListCities(ctx, stateID)
	ps.observe(metrics.UpstreamIBGE, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities of state %d: %w", stateID, err)
	}

	return cities, nil
}

// ResolveRegion returns the states and the cities of stateID, fetched concurrently.
func (ps *PointService) ResolveRegion(ctx context.Context, stateID int) ([]models.State, []models.City, error) {
	var (
		states []models.State
		cities []models.City
	)
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		states, err = ps.States(gctx)
		return err
	})
	group.Go(func() error {
		var err error
		cities, err = ps.Cities(gctx, stateID)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return states, cities, nil
}

// Locate resolves the initial map position. Only lookups that reach the
// geocoder are timed.
func (ps *PointService) Locate(ctx context.Context, hint models.PositionHint) models.Coordinates {
	if _, ok := hint.Device(); ok || hint.Place() == "" {
		return ps.locator.Locate(ctx, hint)
	}

	start := time.Now()
	coords := ps.locator.Locate(ctx, hint)
	ps.metrics.UpstreamSeconds.WithLabelValues(metrics.UpstreamGeocoder).Observe(time.Since(start).Seconds())

	return coords
}

// Submit sends the submission to the points API. When the API could not be
// reached or answered with a transient failure and an outbox is configured,
// the submission is queued for redelivery instead of being lost. Timeouts are
// not queued: the point may already exist.
func (ps *PointService) Submit(ctx context.Context, sub models.Submission) (models.Delivery, error) {
	start := time.Now()
	pointID, err := ps.points.Create(ctx, sub)
	ps.observe(metrics.UpstreamPoints, start, err)

	if err == nil {
		ps.metrics.Submissions.WithLabelValues(statusDelivered).Inc()
		ps.log.InfoContext(ctx, "Collection point created", "point", pointID, "name", sub.Name, "city", sub.City)
		return models.Delivery{Status: models.DeliveryDelivered, PointID: pointID}, nil
	}

	if ps.outbox == nil || !upstream.IsRetryable(err) {
		ps.metrics.Submissions.WithLabelValues(statusFailed).Inc()
		return models.Delivery{}, fmt.Errorf("failed to create collection point: %w", err)
	}

	// The submission is kept even when the request that carried it has timed out.
	outboxID, errQueue := ps.outbox.Enqueue(context.WithoutCancel(ctx), sub, err.Error())
	if errQueue != nil {
		ps.metrics.Submissions.WithLabelValues(statusFailed).Inc()
		return models.Delivery{}, fmt.Errorf("failed to create collection point: %w", errors.Join(err, errQueue))
	}

	ps.metrics.Submissions.WithLabelValues(statusQueued).Inc()
	ps.log.WarnContext(ctx, "Points API unavailable, submission queued",
		"outbox_id", outboxID, "name", sub.Name, "error", err)

	return models.Delivery{Status: models.DeliveryQueued, OutboxID: outboxID}, nil
}

func (ps *PointService) observe(upstreamName string, start time.Time, err error) {
	ps.metrics.UpstreamSeconds.WithLabelValues(upstreamName).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, context.Canceled) {
		ps.metrics.UpstreamErrors.WithLabelValues(upstreamName).Inc()
	}
}
