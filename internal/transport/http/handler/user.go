package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"accounthub/internal/app"
	"accounthub/internal/transport/http/middleware"
	"accounthub/internal/transport/http/response"
)

type UserHandler struct {
	authService *app.AuthService
	userService *app.UserService
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Age      int    `json:"age"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// allowedUpdateKeys is the full set of mutable profile fields. A request
// naming any other key is rejected outright, not partially applied.
var allowedUpdateKeys = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
	"age":      true,
}

func NewUserHandler(authService *app.AuthService, userService *app.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Register(app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	response.Created(c, gin.H{"user": result.User, "token": result.Token})
}

// Login deliberately answers every failure with a bare 400 so callers
// cannot tell a wrong password from an unknown email.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Empty(c, http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Empty(c, http.StatusBadRequest)
		return
	}

	response.OK(c, gin.H{"user": result.User, "token": result.Token})
}

func (h *UserHandler) Logout(c *gin.Context) {
	user, token, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "please authenticate")
		return
	}

	if err := h.authService.Logout(user, token); err != nil {
		response.Empty(c, http.StatusInternalServerError)
		return
	}
	response.Empty(c, http.StatusOK)
}

func (h *UserHandler) LogoutAll(c *gin.Context) {
	user, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "please authenticate")
		return
	}

	if err := h.authService.LogoutAll(user); err != nil {
		response.Empty(c, http.StatusInternalServerError)
		return
	}
	response.Empty(c, http.StatusOK)
}

func (h *UserHandler) GetSelf(c *gin.Context) {
	user, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "please authenticate")
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) UpdateSelf(c *gin.Context) {
	user, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "please authenticate")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	for key := range fields {
		if !allowedUpdateKeys[key] {
			response.Error(c, http.StatusBadRequest, "invalid updates")
			return
		}
	}

	var update app.UserUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if user == nil {
		response.Empty(c, http.StatusNotFound)
		return
	}

	updated, err := h.userService.Update(user, update)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.OK(c, updated)
}

func (h *UserHandler) DeleteSelf(c *gin.Context) {
	user, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "please authenticate")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), user); err != nil {
		response.Empty(c, http.StatusInternalServerError)
		return
	}
	response.OK(c, user)
}
