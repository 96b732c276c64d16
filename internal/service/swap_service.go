package service

import (
	"context"
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/repository"
	"skillswap_backend/internal/util"
	"skillswap_backend/pkg/logger"
	"skillswap_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

type SwapService struct {
	SwapRepo       *repository.SwapRequestRepository
	UserRepo       *repository.UserRepository
	CompletionMode string

	now func() time.Time
}

func NewSwapService(swapRepo *repository.SwapRequestRepository, userRepo *repository.UserRepository, cfg *config.Config) *SwapService {
	return &SwapService{
		SwapRepo:       swapRepo,
		UserRepo:       userRepo,
		CompletionMode: cfg.Swap.CompletionMode,
		now:            time.Now,
	}
}

// Create sends a swap request from requesterID to responderID. If an open
// request between the same directed pair exists it is returned unchanged and
// created is false.
func (s *SwapService) Create(ctx context.Context, requesterID, responderID uint) (*model.SwapRequest, bool, error) {
	if requesterID == responderID {
		return nil, false, util.ErrSwapWithSelf
	}
	if _, err := s.UserRepo.FindByID(ctx, responderID); err != nil {
		return nil, false, err
	}

	req, created, err := s.SwapRepo.GetOrCreateOpen(ctx, requesterID, responderID, s.now())
	if err != nil {
		return nil, false, err
	}
	if created {
		logger.Log.Info("swap request created",
			zap.Uint("swapId", req.ID),
			zap.Uint("requesterId", requesterID),
			zap.Uint("responderId", responderID))
	}
	return req, created, nil
}

// Get returns a swap request visible to userID, which must be a participant.
func (s *SwapService) Get(ctx context.Context, userID, swapID uint) (*model.SwapRequest, error) {
	req, err := s.SwapRepo.FindByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !req.IsParticipant(userID) {
		return nil, util.ErrPermissionDenied
	}
	return req, nil
}

// Transition moves a request to target on behalf of actorID. Only the moves
// in the transition table are allowed, and the write only lands if the
// request is still in the status the check was made against.
func (s *SwapService) Transition(ctx context.Context, actorID, swapID uint, target model.SwapStatus) (*model.SwapRequest, error) {
	if !target.IsValid() {
		return nil, util.ErrInvalidSwapStatus
	}

	req, err := s.SwapRepo.FindByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	from := req.Status
	if !model.CanTransition(req.PartyOf(actorID), from, target) {
		monitoring.SwapRejectedTransitions.WithLabelValues("not_allowed").Inc()
		logger.Log.Info("swap transition denied",
			zap.Uint("swapId", swapID),
			zap.Uint("actorId", actorID),
			zap.String("from", string(from)),
			zap.String("to", string(target)))
		return nil, util.ErrPermissionDenied
	}

	if err := s.compareAndSwap(ctx, req, target); err != nil {
		return nil, err
	}
	return s.SwapRepo.FindByID(ctx, swapID)
}

func (s *SwapService) compareAndSwap(ctx context.Context, req *model.SwapRequest, target model.SwapStatus) error {
	changed, err := s.SwapRepo.CompareAndSwapStatus(ctx, req.ID, req.Status, target, s.now())
	if err != nil {
		return err
	}
	if !changed {
		monitoring.SwapRejectedTransitions.WithLabelValues("conflict").Inc()
		return util.ErrSwapStatusConflict
	}
	s.recordTransition(req.ID, req.Status, target)
	return nil
}

func (s *SwapService) recordTransition(swapID uint, from, to model.SwapStatus) {
	monitoring.SwapTransitions.WithLabelValues(string(from), string(to)).Inc()
	logger.Log.Info("swap status changed",
		zap.Uint("swapId", swapID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
}

// Complete records actor's wish to finish an accepted swap. What it takes for
// the swap to become completed depends on the completion mode.
func (s *SwapService) Complete(ctx context.Context, actor *util.Claims, swapID uint) (*model.SwapRequest, error) {
	req, err := s.SwapRepo.FindByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if req.Status != model.SwapAccepted {
		monitoring.SwapRejectedTransitions.WithLabelValues("not_accepted").Inc()
		return nil, util.ErrPermissionDenied
	}

	party := req.PartyOf(actor.UserID)
	switch s.CompletionMode {
	case config.CompletionAdmin:
		if actor.Role != model.Admin {
			monitoring.SwapRejectedTransitions.WithLabelValues("admin_only").Inc()
			return nil, util.ErrPermissionDenied
		}
		err = s.compareAndSwap(ctx, req, model.SwapCompleted)

	case config.CompletionParticipant:
		if party == model.PartyNone {
			return nil, util.ErrPermissionDenied
		}
		err = s.compareAndSwap(ctx, req, model.SwapCompleted)

	default:
		if party == model.PartyNone {
			return nil, util.ErrPermissionDenied
		}
		err = s.confirm(ctx, req, party)
	}
	if err != nil {
		return nil, err
	}
	return s.SwapRepo.FindByID(ctx, swapID)
}

// confirm sets party's flag and completes the swap once both flags are set.
// Confirming twice is a no-op.
func (s *SwapService) confirm(ctx context.Context, req *model.SwapRequest, party model.SwapParty) error {
	now := s.now()
	if _, err := s.SwapRepo.Confirm(ctx, req.ID, party, now); err != nil {
		return err
	}

	completed, err := s.SwapRepo.CompleteIfConfirmed(ctx, req.ID, now)
	if err != nil {
		return err
	}
	if completed {
		s.recordTransition(req.ID, model.SwapAccepted, model.SwapCompleted)
		return nil
	}

	current, err := s.SwapRepo.FindByID(ctx, req.ID)
	if err != nil {
		return err
	}
	// A concurrent writer may have completed it; anything else is a lost race.
	if current.Status != model.SwapAccepted && current.Status != model.SwapCompleted {
		return util.ErrSwapStatusConflict
	}
	return nil
}

// AdminComplete completes an accepted swap regardless of completion mode.
func (s *SwapService) AdminComplete(ctx context.Context, swapID uint) (*model.SwapRequest, error) {
	req, err := s.SwapRepo.FindByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.SwapAccepted {
		return nil, util.ErrPermissionDenied
	}
	if err := s.compareAndSwap(ctx, req, model.SwapCompleted); err != nil {
		return nil, err
	}
	return s.SwapRepo.FindByID(ctx, swapID)
}

func (s *SwapService) ListIncoming(ctx context.Context, userID uint) ([]model.SwapRequest, error) {
	return s.SwapRepo.ListIncoming(ctx, userID)
}

func (s *SwapService) ListSent(ctx context.Context, userID uint) ([]model.SwapRequest, error) {
	return s.SwapRepo.ListSent(ctx, userID)
}

func (s *SwapService) ListActive(ctx context.Context, userID uint) ([]model.SwapRequest, error) {
	return s.SwapRepo.ListByParticipantAndStatus(ctx, userID, model.SwapAccepted)
}

func (s *SwapService) ListCompleted(ctx context.Context, userID uint) ([]model.SwapRequest, error) {
	return s.SwapRepo.ListByParticipantAndStatus(ctx, userID, model.SwapCompleted)
}

func (s *SwapService) CountCompleted(ctx context.Context, userID uint) (int64, error) {
	return s.SwapRepo.CountByParticipantAndStatus(ctx, userID, model.SwapCompleted)
}

// SwapExists reports whether the two users have any swap request between
// them, in either direction.
func (s *SwapService) SwapExists(ctx context.Context, a, b uint) (bool, error) {
	if a == b {
		return false, nil
	}
	return s.SwapRepo.ExistsBetween(ctx, a, b)
}
