package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	logger      *slog.Logger
}

type RegisterRequest struct {
	Name            string `json:"name" form:"name" binding:"notblank"`
	Email           string `json:"email" form:"email" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmpassword" form:"confirmpassword" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

var authBindingMessages = map[string]string{
	"name.notblank":            "Name can not be empty",
	"email.required":           "Email is required",
	"password.required":        "Password cannot be blank",
	"password.min":             "Password must be 8 characters long",
	"confirmpassword.required": "Please enter the password",
}

func NewAuthHandler(authService *app.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err, authBindingMessages)
		return
	}

	_, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserExists):
			response.Message(c, http.StatusOK, "User Already Exist")
		case errors.Is(err, app.ErrBadCredentials):
			response.Message(c, http.StatusBadRequest, "Wrong credentials")
		default:
			internalError(c, h.logger, "register", err)
		}
		return
	}

	response.Message(c, http.StatusOK, "User saved")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err, authBindingMessages)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmailNotFound):
			response.Message(c, http.StatusNotFound, "Email not found")
		case errors.Is(err, app.ErrLoginFailed):
			response.Data(c, http.StatusNotFound, response.LoginResponse{Message: "Login failed!!!"})
		default:
			internalError(c, h.logger, "login", err)
		}
		return
	}

	response.Data(c, http.StatusOK, response.LoginResponse{
		Message: "Login Successful",
		Token:   result.Token,
		Body:    result.User,
	})
}
