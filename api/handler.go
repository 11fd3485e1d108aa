package api

import (
	"github.com/gofiber/fiber/v2"

	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/service"
	"cpu-scheduler/pkg/logger"
)

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTimeFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	MultilevelFeedbackQueue(ctx *fiber.Ctx) error
	Simulate(ctx *fiber.Ctx) error
	SimulateFromURL(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	HealthCheck(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	service *service.Service
}

func NewSchedulerHandlerImpl(svc *service.Service) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{service: svc}
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.scheduleAs(ctx, requests.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.scheduleAs(ctx, requests.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeFirst(ctx *fiber.Ctx) error {
	return s.scheduleAs(ctx, requests.ShortestRemainingTimeFirst)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.scheduleAs(ctx, requests.Priority)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.scheduleAs(ctx, requests.RoundRobin)
}

func (s *SchedulerHandlerImpl) MultilevelFeedbackQueue(ctx *fiber.Ctx) error {
	return s.scheduleAs(ctx, requests.MultilevelFeedbackQueue)
}

// Simulate takes the algorithm from the request body.
func (s *SchedulerHandlerImpl) Simulate(ctx *fiber.Ctx) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidFormat(ctx)
	}
	algorithm, err := requests.ParseAlgorithm(string(request.Algorithm))
	if err != nil {
		return errorResponse(ctx, err)
	}
	request.Algorithm = algorithm
	return s.respond(ctx, request)
}

// SimulateFromURL accepts the algorithm and data query parameters used to
// hand a request from the input page to the simulation page.
func (s *SchedulerHandlerImpl) SimulateFromURL(ctx *fiber.Ctx) error {
	request, err := requests.DecodeURL(ctx.OriginalURL())
	if err != nil {
		return errorResponse(ctx, err)
	}
	return s.respond(ctx, request)
}

// AllAlgorithms runs every applicable algorithm on the same processes. The
// quanta default to the configured ones.
func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	// the algorithm field, if any, is ignored
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidFormat(ctx)
	}

	cfg := s.service.Config()
	opts := service.CompareOptions{
		TimeQuantum:       cfg.RoundRobinTimeQuantum,
		LevelsTimeQuantum: cfg.MultilevelFeedbackQueueLevelsTimeQuantum,
	}
	if request.TimeQuantum != nil {
		opts.TimeQuantum = *request.TimeQuantum
	}
	if len(request.LevelsTimeQuantum) > 0 {
		opts.LevelsTimeQuantum = request.LevelsTimeQuantum
	}

	response, err := s.service.Compare(ctx.UserContext(), request.Processes, opts)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) HealthCheck(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "healthy"})
}

func (s *SchedulerHandlerImpl) scheduleAs(ctx *fiber.Ctx, algorithm requests.Algorithm) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidFormat(ctx)
	}
	request.Algorithm = algorithm
	return s.respond(ctx, request)
}

func (s *SchedulerHandlerImpl) respond(ctx *fiber.Ctx, request requests.ScheduleRequest) error {
	response, err := s.service.Simulate(ctx.UserContext(), request)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(response)
}

func invalidFormat(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request format",
	})
}

func errorResponse(ctx *fiber.Ctx, err error) error {
	if requests.IsRejection(err) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.Logger(ctx.UserContext()).Error().Err(err).Msg("can not process request")
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not process request"})
}
