package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the JSON envelope every endpoint returns.
// Data is not omitempty so an empty listing still renders "data": [].
type APIResponse[T any] struct {
	Success    bool   `json:"success"`
	RequestID  string `json:"request_id,omitempty"`
	Count      *int   `json:"count,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
	Data       T      `json:"data"`
}

type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

func Success[T any](ctx *gin.Context, status int, data T) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Success:   true,
		RequestID: ctx.GetString("request_id"),
		Data:      data,
	}
	ctx.JSON(status, resp)
	return resp
}

// List renders a collection with its count and, when present, pagination.
func List[T any](ctx *gin.Context, data []T, pagination any) APIResponse[[]T] {
	if data == nil {
		data = []T{}
	}
	n := len(data)
	resp := APIResponse[[]T]{
		Success:    true,
		RequestID:  ctx.GetString("request_id"),
		Count:      &n,
		Pagination: pagination,
		Data:       data,
	}
	ctx.JSON(http.StatusOK, resp)
	return resp
}

func Token(ctx *gin.Context, status int, token string) TokenResponse {
	if status == 0 {
		status = http.StatusOK
	}
	resp := TokenResponse{Success: true, Token: token}
	ctx.JSON(status, resp)
	return resp
}

// Error renders a failure envelope and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string) ErrorResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := ErrorResponse{
		Success:   false,
		RequestID: ctx.GetString("request_id"),
		Error:     message,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}
