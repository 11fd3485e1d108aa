package service

import (
	"context"
	"encoding/json"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"cpu-scheduler/config"
	"cpu-scheduler/internal/metrics"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
	"cpu-scheduler/internal/schedulers"
	"cpu-scheduler/pkg/logger"
)

// Service wraps the scheduling engine with caching, metrics and logging.
// Results are pure functions of the request, so a cached result is
// indistinguishable from a fresh run.
type Service struct {
	results *cache.Cache[string, responses.ScheduleResponse]
	stop    context.CancelFunc
	ttl     time.Duration
	metrics *metrics.Collector
	cfg     *config.SchedulerConfig
}

// NewService starts the cache's expiration janitor; Close stops it.
func NewService(cfg *config.SchedulerConfig, collector *metrics.Collector) *Service {
	ctx, stop := context.WithCancel(context.Background())
	return &Service{
		results: cache.NewContext(ctx, cache.AsLRU[string, responses.ScheduleResponse](lru.WithCapacity(cfg.Cache.Capacity))),
		stop:    stop,
		ttl:     cfg.Cache.TTL,
		metrics: collector,
		cfg:     cfg,
	}
}

// Close releases the cache janitor. The service keeps answering afterwards,
// but expired results are only dropped when they are looked up.
func (svc *Service) Close() {
	svc.stop()
}

func (svc *Service) Config() *config.SchedulerConfig {
	return svc.cfg
}

// Simulate validates and runs one request. The returned response is a copy
// the caller may keep.
func (svc *Service) Simulate(ctx context.Context, request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	log := logger.Logger(ctx).With().
		Str("run_id", xid.New().String()).
		Str("algorithm", string(request.Algorithm)).
		Int("processes", len(request.Processes)).
		Logger()

	if err := request.Validate(); err != nil {
		svc.metrics.ObserveSimulation(string(request.Algorithm), metrics.OutcomeRejected, 0)
		log.Warn().Err(err).Msg("simulation request rejected")
		return responses.ScheduleResponse{}, err
	}

	key, err := cacheKey(request)
	if err != nil {
		return responses.ScheduleResponse{}, err
	}
	if cached, ok := svc.results.Get(key); ok {
		svc.metrics.ObserveCacheLookup(true)
		log.Debug().Msg("serving cached schedule")
		return cached.Clone(), nil
	}
	svc.metrics.ObserveCacheLookup(false)

	start := time.Now()
	response, err := schedulers.Schedule(request)
	elapsed := time.Since(start)
	if err != nil {
		svc.metrics.ObserveSimulation(string(request.Algorithm), metrics.OutcomeFailed, elapsed.Seconds())
		log.Error().Err(err).Msg("simulation failed")
		return responses.ScheduleResponse{}, err
	}

	svc.metrics.ObserveSimulation(string(request.Algorithm), metrics.OutcomeSuccess, elapsed.Seconds())
	svc.metrics.ObserveSchedule(string(request.Algorithm), response.TotalTime, response.AverageWaitingTime)
	if svc.ttl > 0 {
		svc.results.Set(key, response, cache.WithExpiration(svc.ttl))
	} else {
		svc.results.Set(key, response)
	}

	log.Info().
		Int("total_time", response.TotalTime).
		Int("idle_time", response.IdleTime).
		Float64("average_waiting_time", response.AverageWaitingTime).
		Dur("elapsed", elapsed).
		Msg("simulation completed")
	return response.Clone(), nil
}

// CompareOptions carries the algorithm parameters for Compare. Priority runs
// only when every process has a priority, MLFQ only when levels are given.
type CompareOptions struct {
	TimeQuantum       int
	LevelsTimeQuantum []int
}

// Compare runs every applicable algorithm on the same processes
// concurrently. Each run gets its own copy of the descriptors.
func (svc *Service) Compare(ctx context.Context, processes []requests.Process, opts CompareOptions) (responses.CompareResponse, error) {
	batch := comparisonRequests(processes, opts)
	results := make([]responses.ScheduleResponse, len(batch))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, request := range batch {
		i, request := i, request
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			response, err := svc.Simulate(groupCtx, request)
			if err != nil {
				return errors.WithMessagef(err, "%s", request.Algorithm)
			}
			results[i] = response
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return responses.CompareResponse{}, err
	}

	compare := responses.CompareResponse{
		Algorithms: make([]string, 0, len(batch)),
		Results:    make(map[string]responses.ScheduleResponse, len(batch)),
	}
	for i, request := range batch {
		name := string(request.Algorithm)
		compare.Algorithms = append(compare.Algorithms, name)
		compare.Results[name] = results[i]
		if compare.BestAverageWaiting == "" || results[i].AverageWaitingTime < compare.Results[compare.BestAverageWaiting].AverageWaitingTime {
			compare.BestAverageWaiting = name
		}
	}
	return compare, nil
}

func comparisonRequests(processes []requests.Process, opts CompareOptions) []requests.ScheduleRequest {
	base := requests.ScheduleRequest{Processes: processes}
	withPriorities := len(processes) > 0
	for _, p := range processes {
		if p.Priority == nil {
			withPriorities = false
		}
	}

	batch := make([]requests.ScheduleRequest, 0, len(requests.Algorithms))
	for _, algorithm := range requests.Algorithms {
		request := base.Clone()
		request.Algorithm = algorithm
		switch algorithm {
		case requests.Priority:
			if !withPriorities {
				continue
			}
		case requests.RoundRobin:
			request.TimeQuantum = requests.IntPtr(opts.TimeQuantum)
		case requests.MultilevelFeedbackQueue:
			if len(opts.LevelsTimeQuantum) == 0 {
				continue
			}
			request.LevelsTimeQuantum = append([]int(nil), opts.LevelsTimeQuantum...)
		}
		batch = append(batch, request)
	}
	return batch
}

func cacheKey(request requests.ScheduleRequest) (string, error) {
	key, err := json.Marshal(request)
	if err != nil {
		return "", errors.Wrap(err, "marshal cache key")
	}
	return string(key), nil
}
