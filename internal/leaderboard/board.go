package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/2beens/gymquest/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const MaxPageSize = 100

var ErrPageOutOfRange = errors.New("page out of range")

// MaxPage is the last page whose end offset still fits in an int for the given size.
func MaxPage(size int) int {
	return math.MaxInt / size
}

//go:generate mockgen -source=$GOFILE -destination=board_mocks_test.go -package=leaderboard_test

type ranking interface {
	Rank(ctx context.Context, userID int) (int, error)
	Top(ctx context.Context, offset, limit int) ([]Entry, error)
	Count(ctx context.Context) (int, error)
}

type rankingStore interface {
	Page(ctx context.Context, offset, limit int) ([]Entry, error)
	Rank(ctx context.Context, userID int) (int, error)
	Count(ctx context.Context) (int, error)
	Profiles(ctx context.Context, entries []Entry) error
}

type Page struct {
	Entries  []Entry `json:"entries"`
	UserRank int     `json:"user_rank,omitempty"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	Size     int     `json:"size"`
}

// Board serves leaderboard pages from the ranking set and falls back to the
// materialized ranks in postgres when redis fails.
type Board struct {
	ranking ranking
	store   rankingStore
}

func NewBoard(ranking ranking, store rankingStore) *Board {
	return &Board{
		ranking: ranking,
		store:   store,
	}
}

// Page returns the page-th (1 based) page of the given size, and the rank of userID if set.
func (b *Board) Page(ctx context.Context, page, size, userID int) (_ *Page, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.page")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", page), attribute.Int("size", size))

	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxPageSize {
		size = MaxPageSize
	}
	if page > MaxPage(size) {
		return nil, ErrPageOutOfRange
	}
	offset := (page - 1) * size

	entries, total, err := b.fromRanking(ctx, offset, size)
	if err != nil {
		log.Errorf("leaderboard, ranking set unavailable, reading from db: %s", err)
		entries, total, err = b.fromStore(ctx, offset, size)
		if err != nil {
			return nil, err
		}
	}

	result := &Page{
		Entries: entries,
		Total:   total,
		Page:    page,
		Size:    size,
	}
	if userID > 0 {
		result.UserRank, err = b.rank(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (b *Board) fromRanking(ctx context.Context, offset, limit int) ([]Entry, int, error) {
	entries, err := b.ranking.Top(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("top: %w", err)
	}
	total, err := b.ranking.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	if err := b.store.Profiles(ctx, entries); err != nil {
		return nil, 0, fmt.Errorf("profiles: %w", err)
	}
	return entries, total, nil
}

func (b *Board) fromStore(ctx context.Context, offset, limit int) ([]Entry, int, error) {
	entries, err := b.store.Page(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("db page: %w", err)
	}
	total, err := b.store.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("db count: %w", err)
	}
	return entries, total, nil
}

func (b *Board) rank(ctx context.Context, userID int) (int, error) {
	rank, err := b.ranking.Rank(ctx, userID)
	if err == nil {
		return rank, nil
	}
	if !errors.Is(err, ErrNotRanked) {
		log.Errorf("leaderboard, rank of user %d from ranking set: %s", userID, err)
	}

	rank, err = b.store.Rank(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotRanked) {
			return 0, nil
		}
		return 0, fmt.Errorf("db rank: %w", err)
	}
	return rank, nil
}
