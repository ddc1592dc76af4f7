package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/2beens/gymquest/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	listCacheKey     = "exercises::all"
	catalogCacheSize = 8 * 1024 * 1024
	defaultCacheTTL  = 10 * time.Minute
)

//go:generate mockgen -source=$GOFILE -destination=catalog_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	List(ctx context.Context) ([]Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
}

// Catalog is a read-through cache in front of the exercises repo. Exercises only
// change with migrations, so a short expiry is enough to pick up new entries.
type Catalog struct {
	repo          exercisesRepo
	cache         *freecache.Cache
	expireSeconds int
}

func NewCatalog(repo exercisesRepo, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Catalog{
		repo:          repo,
		cache:         freecache.NewCache(catalogCacheSize),
		expireSeconds: int(ttl.Seconds()),
	}
}

func (c *Catalog) List(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exercises []Exercise
	if c.fromCache(listCacheKey, &exercises) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return exercises, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	exercises, err = c.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	c.toCache(listCacheKey, exercises)
	return exercises, nil
}

func (c *Catalog) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	cacheKey := "exercise::" + strconv.Itoa(id)
	exercise := &Exercise{}
	if c.fromCache(cacheKey, exercise) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return exercise, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	exercise, err = c.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.toCache(cacheKey, exercise)
	return exercise, nil
}

// Invalidate drops all cached entries.
func (c *Catalog) Invalidate() {
	c.cache.Clear()
}

func (c *Catalog) fromCache(key string, dst any) bool {
	cached, err := c.cache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("exercises catalog, get %s from cache: %s", key, err)
		}
		return false
	}
	if err := json.Unmarshal(cached, dst); err != nil {
		log.Errorf("exercises catalog, unmarshal cached %s: %s", key, err)
		return false
	}
	log.Tracef("exercises catalog, cache hit: %s", key)
	return true
}

func (c *Catalog) toCache(key string, v any) {
	valueBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("exercises catalog, marshal %s: %s", key, err)
		return
	}
	if err := c.cache.Set([]byte(key), valueBytes, c.expireSeconds); err != nil {
		log.Errorf("exercises catalog, set %s in cache: %s", key, err)
	}
}
