package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsquad/shopsquad-backend/errors"
	"github.com/shopsquad/shopsquad-backend/middleware"
	"github.com/shopsquad/shopsquad-backend/models"
	"github.com/shopsquad/shopsquad-backend/types"
)

type UserHandler struct {
	userModel *models.UserModel
}

func NewUserHandler(userModel *models.UserModel) *UserHandler {
	return &UserHandler{userModel: userModel}
}

// RegisterHandler handles POST /v1/auth/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req types.UserRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	resp, err := h.userModel.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /v1/auth/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req types.UserLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	resp, err := h.userModel.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MeHandler handles GET /v1/users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	user, err := h.userModel.GetUserByID(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}
