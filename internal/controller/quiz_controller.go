package controller

import (
	"errors"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/service"
	"skillswap_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers []string `json:"answers"`
}

// GenerateQuiz godoc
// @Summary Start a skill verification quiz
// @Description Generates a quiz for a skill the caller offers and keeps it as their pending quiz. Generator failures answer 200 with an empty quiz and apiError set
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param skillId path int true "Skill ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "Skill not on the offered list"
// @Failure 404 {object} util.Response
// @Router /api/quiz/{skillId} [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	skillID, ok := idParam(ctx, "skillId")
	if !ok {
		return
	}

	quiz, err := c.QuizService.Generate(ctx.Request.Context(), claims.UserID, skillID)
	if errors.Is(err, util.ErrExternalService) {
		util.Success(ctx, softAIResponse{Result: service.QuizView{Questions: []model.PublicQuestion{}}, APIError: "Could not generate a quiz at this time. " + err.Error()})
		return
	}
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, softAIResponse{Result: quiz})
}

// SubmitQuiz godoc
// @Summary Submit answers to the pending quiz
// @Description Scores the answers in question order. The quiz is consumed whatever the outcome
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitQuizRequest true "Selected option per question"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Failure 410 {object} util.Response "No pending quiz"
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.QuizService.Submit(ctx.Request.Context(), claims.UserID, req.Answers)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
