package recommendation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/screentime/screentime-api/internal/domain/booking"
	"github.com/screentime/screentime-api/internal/domain/demand"
	"github.com/screentime/screentime-api/internal/pkg/logger"
	"github.com/screentime/screentime-api/internal/pkg/metrics"
)

const cacheKeyPrefix = "recommendation:"

// Generator produces suggestions for a contended selection
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Cache stores serialized results. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Requester guards, bounds and caches calls to a Generator
type Requester struct {
	gen      Generator
	cache    Cache
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewRequester creates a requester. cache may be nil.
func NewRequester(gen Generator, cache Cache, timeout, cacheTTL time.Duration) *Requester {
	return &Requester{
		gen:      gen,
		cache:    cache,
		timeout:  timeout,
		cacheTTL: cacheTTL,
	}
}

type generateResult struct {
	res *Result
	err error
}

// Request returns suggestions for req. It returns ErrNotContended without
// calling the generator for low demand, and ErrTimeout when the generator does
// not answer in time.
func (r *Requester) Request(ctx context.Context, req Request) (*Result, error) {
	if req.DemandLevel != demand.LevelMedium && req.DemandLevel != demand.LevelHigh {
		return nil, ErrNotContended
	}

	name := r.gen.Name()
	key := cacheKey(name, req)

	if cached := r.fromCache(ctx, key); cached != nil {
		metrics.RecommendationRequests.WithLabelValues(name, "cache_hit").Inc()
		return cached, nil
	}

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	done := make(chan generateResult, 1)
	go func() {
		res, err := r.gen.Generate(callCtx, req)
		done <- generateResult{res: res, err: err}
	}()

	var out generateResult
	select {
	case out = <-done:
	case <-callCtx.Done():
		out = generateResult{err: callCtx.Err()}
	}
	metrics.RecommendationDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if out.err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			metrics.RecommendationRequests.WithLabelValues(name, "timeout").Inc()
			return nil, fmt.Errorf("%w after %s: %w", ErrTimeout, r.timeout, out.err)
		}
		metrics.RecommendationRequests.WithLabelValues(name, "error").Inc()
		return nil, fmt.Errorf("generate recommendations: %w", out.err)
	}
	if out.res == nil {
		metrics.RecommendationRequests.WithLabelValues(name, "error").Inc()
		return nil, ErrEmptyResult
	}

	metrics.RecommendationRequests.WithLabelValues(name, "success").Inc()
	r.toCache(ctx, key, out.res)
	return out.res, nil
}

func (r *Requester) fromCache(ctx context.Context, key string) *Result {
	if r.cache == nil {
		return nil
	}
	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("Recommendation cache read failed")
		return nil
	}
	if !ok {
		return nil
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil
	}
	return &res
}

func (r *Requester) toCache(ctx context.Context, key string, res *Result) {
	if r.cache == nil || r.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.cacheTTL); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("Recommendation cache write failed")
	}
}

// cacheKey identifies a request independent of candidate order
func cacheKey(generator string, req Request) string {
	candidates := make([]string, len(req.CandidateScreenIDs))
	for i, id := range req.CandidateScreenIDs {
		candidates[i] = id.String()
	}
	sort.Strings(candidates)

	parts := []string{
		generator,
		req.SelectedScreenID.String(),
		booking.FormatDate(req.SelectedDate),
		string(req.SelectedTimeSlot),
		string(req.DemandLevel),
		strings.Join(candidates, ","),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
