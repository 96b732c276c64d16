package controller

import (
	"skillswap_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUser returns the authenticated caller, answering 401 if there is none.
func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return claims, true
}

// idParam parses a positive integer path parameter, answering 400 if it is
// not one.
func idParam(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt(ctx *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		return def
	}
	return v
}

// softAIResponse is returned by AI-backed endpoints. A failed generator
// call still answers 200 with an empty result and the reason in APIError.
type softAIResponse struct {
	Result   interface{} `json:"result"`
	APIError string      `json:"apiError,omitempty"`
}
