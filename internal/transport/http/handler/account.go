package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/response"
)

// AccountHandler serves the password recovery routes under /user.
type AccountHandler struct {
	authService *app.AuthService
	logger      *slog.Logger
}

type ResetPasswordRequest struct {
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmpassword" form:"confirmpassword"`
}

func NewAccountHandler(authService *app.AuthService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{authService: authService, logger: logger}
}

func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = c.PostForm("email")
	}

	err := h.authService.ForgotPassword(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidEmail):
			response.Message(c, http.StatusBadRequest, "Please provide a valid email")
		case errors.Is(err, app.ErrEmailNotFound):
			response.Message(c, http.StatusNotFound, "Email not found")
		case errors.Is(err, app.ErrTooManyRequests):
			response.Message(c, http.StatusTooManyRequests, "Too many requests, please try again later")
		default:
			internalError(c, h.logger, "forgot password", err)
		}
		return
	}

	response.Message(c, http.StatusOK, "Email is sent to your email")
}

func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err, nil)
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), app.ResetPasswordInput{
		Token:           c.Query("token"),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrBadPasswordFormat):
			response.Message(c, http.StatusBadRequest, "Please provide the password with proper format")
		case errors.Is(err, app.ErrInvalidResetToken):
			response.Message(c, http.StatusBadRequest, "Please provide the valid token")
		default:
			h.logger.ErrorContext(c.Request.Context(), "reset password failed", slog.Any("error", err))
			response.Message(c, http.StatusInternalServerError, "Something went wrong!!!")
		}
		return
	}

	response.Message(c, http.StatusOK, "Password changed!!!")
}
