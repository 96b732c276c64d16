package repository

import (
	"context"
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type SwapRequestRepository struct {
	DB *gorm.DB
}

func NewSwapRequestRepository(db *gorm.DB) *SwapRequestRepository {
	return &SwapRequestRepository{DB: db}
}

func (r *SwapRequestRepository) withParties(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Preload("Requester").Preload("Responder")
}

func (r *SwapRequestRepository) FindByID(ctx context.Context, id uint) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.withParties(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSwapNotFound
	}
	return &req, err
}

// GetOrCreateOpen returns the open (pending or accepted) request from
// requester to responder, or creates a pending one. The lookup and insert run
// in one transaction.
func (r *SwapRequestRepository) GetOrCreateOpen(ctx context.Context, requesterID, responderID uint, now time.Time) (*model.SwapRequest, bool, error) {
	var req model.SwapRequest
	created := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("requester_id = ? AND responder_id = ? AND status IN ?",
			requesterID, responderID, []model.SwapStatus{model.SwapPending, model.SwapAccepted}).
			Order("id DESC").
			First(&req).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		req = model.SwapRequest{
			RequesterID: requesterID,
			ResponderID: responderID,
			Status:      model.SwapPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		created = true
		return tx.Omit("Requester", "Responder").Create(&req).Error
	})
	if err != nil {
		return nil, false, err
	}
	full, err := r.FindByID(ctx, req.ID)
	return full, created, err
}

// CompareAndSwapStatus moves a request from one status to another only if it
// is still in from. It reports whether the row changed.
func (r *SwapRequestRepository) CompareAndSwapStatus(ctx context.Context, id uint, from, to model.SwapStatus, now time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}
	if to == model.SwapCompleted {
		updates["completed_at"] = now
	}
	res := r.DB.WithContext(ctx).Model(&model.SwapRequest{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumns(updates)
	return res.RowsAffected > 0, res.Error
}

// Confirm records a participant's completion confirmation on an accepted
// swap. It reports whether the flag changed.
func (r *SwapRequestRepository) Confirm(ctx context.Context, id uint, party model.SwapParty, now time.Time) (bool, error) {
	column := confirmColumn(party)
	if column == "" {
		return false, util.ErrPermissionDenied
	}
	res := r.DB.WithContext(ctx).Model(&model.SwapRequest{}).
		Where("id = ? AND status = ?", id, model.SwapAccepted).
		Where(column+" = ?", false).
		UpdateColumns(map[string]interface{}{column: true, "updated_at": now})
	return res.RowsAffected > 0, res.Error
}

// CompleteIfConfirmed completes an accepted swap once both parties confirmed.
func (r *SwapRequestRepository) CompleteIfConfirmed(ctx context.Context, id uint, now time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.SwapRequest{}).
		Where("id = ? AND status = ?", id, model.SwapAccepted).
		Where("requester_confirmed = ? AND responder_confirmed = ?", true, true).
		UpdateColumns(map[string]interface{}{
			"status":       model.SwapCompleted,
			"completed_at": now,
			"updated_at":   now,
		})
	return res.RowsAffected > 0, res.Error
}

func confirmColumn(party model.SwapParty) string {
	switch party {
	case model.PartyRequester:
		return "requester_confirmed"
	case model.PartyResponder:
		return "responder_confirmed"
	}
	return ""
}

func reviewedColumn(party model.SwapParty) string {
	switch party {
	case model.PartyRequester:
		return "requester_reviewed"
	case model.PartyResponder:
		return "responder_reviewed"
	}
	return ""
}

// ListIncoming returns pending requests addressed to userID.
func (r *SwapRequestRepository) ListIncoming(ctx context.Context, userID uint) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.withParties(ctx).
		Where("responder_id = ? AND status = ?", userID, model.SwapPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// ListSent returns requests userID sent that are neither accepted nor completed.
func (r *SwapRequestRepository) ListSent(ctx context.Context, userID uint) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.withParties(ctx).
		Where("requester_id = ?", userID).
		Where("status NOT IN ?", []model.SwapStatus{model.SwapCompleted, model.SwapAccepted}).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// ListByParticipantAndStatus returns swaps in status that userID takes part in,
// most recently updated first.
func (r *SwapRequestRepository) ListByParticipantAndStatus(ctx context.Context, userID uint, status model.SwapStatus) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.withParties(ctx).
		Where("(requester_id = ? OR responder_id = ?) AND status = ?", userID, userID, status).
		Order("updated_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *SwapRequestRepository) CountByParticipantAndStatus(ctx context.Context, userID uint, status model.SwapStatus) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SwapRequest{}).
		Where("(requester_id = ? OR responder_id = ?) AND status = ?", userID, userID, status).
		Count(&count).Error
	return count, err
}

// ExistsBetween reports whether any request links the two users, in either
// direction and any status.
func (r *SwapRequestRepository) ExistsBetween(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SwapRequest{}).
		Where("(requester_id = ? AND responder_id = ?) OR (requester_id = ? AND responder_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}
