package controller

import (
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/service"
	"skillswap_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SwapController struct {
	SwapService   *service.SwapService
	ReviewService *service.ReviewService
}

func NewSwapController(swapService *service.SwapService, reviewService *service.ReviewService) *SwapController {
	return &SwapController{
		SwapService:   swapService,
		ReviewService: reviewService,
	}
}

// swagger:model CreateSwapRequest
type CreateSwapRequest struct {
	ResponderID uint `json:"responderId" binding:"required"`
}

// swagger:model UpdateSwapStatusRequest
type UpdateSwapStatusRequest struct {
	Status model.SwapStatus `json:"status" binding:"required"`
}

// swagger:model SubmitReviewRequest
type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateSwap godoc
// @Summary Send a swap request
// @Description Returns the existing open request to the same user if there is one
// @Tags swaps
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateSwapRequest true "Responder"
// @Success 200 {object} util.Response{data=model.SwapRequest} "Existing open request"
// @Success 201 {object} util.Response{data=model.SwapRequest}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/swaps [post]
func (c *SwapController) CreateSwap(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req CreateSwapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	swap, created, err := c.SwapService.Create(ctx.Request.Context(), claims.UserID, req.ResponderID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if created {
		util.Created(ctx, swap)
		return
	}
	util.Success(ctx, swap)
}

// GetSwap godoc
// @Summary Get a swap request
// @Tags swaps
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Swap ID"
// @Success 200 {object} util.Response{data=model.SwapRequest}
// @Failure 403 {object} util.Response
// @Router /api/swaps/{id} [get]
func (c *SwapController) GetSwap(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	swapID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	swap, err := c.SwapService.Get(ctx.Request.Context(), claims.UserID, swapID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, swap)
}

// UpdateStatus godoc
// @Summary Accept, reject or cancel a swap request
// @Description The responder accepts or rejects a pending request; the requester may cancel it
// @Tags swaps
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Swap ID"
// @Param body body UpdateSwapStatusRequest true "Target status"
// @Success 200 {object} util.Response{data=model.SwapRequest}
// @Failure 403 {object} util.Response
// @Router /api/swaps/{id}/status [post]
func (c *SwapController) UpdateStatus(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	swapID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req UpdateSwapStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	swap, err := c.SwapService.Transition(ctx.Request.Context(), claims.UserID, swapID, req.Status)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, swap)
}

// CompleteSwap godoc
// @Summary Mark an accepted swap as completed
// @Description Depending on the completion mode this records the caller's confirmation or completes the swap outright
// @Tags swaps
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Swap ID"
// @Success 200 {object} util.Response{data=model.SwapRequest}
// @Failure 403 {object} util.Response
// @Router /api/swaps/{id}/complete [post]
func (c *SwapController) CompleteSwap(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	swapID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	swap, err := c.SwapService.Complete(ctx.Request.Context(), claims, swapID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, swap)
}

// AdminComplete godoc
// @Summary Complete a swap as administrator
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Swap ID"
// @Success 200 {object} util.Response{data=model.SwapRequest}
// @Router /api/admin/swaps/{id}/complete [post]
func (c *SwapController) AdminComplete(ctx *gin.Context) {
	swapID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	swap, err := c.SwapService.AdminComplete(ctx.Request.Context(), swapID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, swap)
}

// ReviewStatus godoc
// @Summary Review eligibility for a swap
// @Description Reports whether the caller may review the swap now and, if not, why
// @Tags reviews
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Swap ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/swaps/{id}/review [get]
func (c *SwapController) ReviewStatus(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	swapID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	swap, err := c.ReviewService.CheckEligibility(ctx.Request.Context(), claims.UserID, swapID)
	if swap == nil {
		util.HandleServiceError(ctx, err)
		return
	}

	resp := gin.H{"swap": swap, "canReview": err == nil}
	if err != nil {
		resp["reason"] = err.Error()
	}
	if swap.IsParticipant(claims.UserID) {
		reviews, listErr := c.ReviewService.ForSwap(ctx.Request.Context(), claims.UserID, swapID)
		if listErr != nil {
			util.HandleServiceError(ctx, listErr)
			return
		}
		resp["reviews"] = reviews
	}
	util.Success(ctx, resp)
}

// SubmitReview godoc
// @Summary Review the other participant of a completed swap
// @Tags reviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Swap ID"
// @Param body body SubmitReviewRequest true "Rating 1-5 and comment"
// @Success 201 {object} util.Response{data=model.Review}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response "Not eligible, with the reason"
// @Router /api/swaps/{id}/review [post]
func (c *SwapController) SubmitReview(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	swapID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	review, err := c.ReviewService.Submit(ctx.Request.Context(), claims.UserID, swapID, req.Rating, req.Comment)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, review)
}
