package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/user"
)

// @Summary      Register account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      user.RegisterRequest  true  "Account"
// @Success      201   {object}  user.AuthResponse
// @Failure      400   {object}  httpx.HTTPError
// @Failure      429   {object}  httpx.HTTPError
// @Router       /api/auth/register [post]
func registerHandler(svc accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.RegisterRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BindError(c, err)
			return
		}
		out, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, user.ErrAlreadyExist) {
				httpx.Error(c, http.StatusBadRequest, "Username or email already exists")
				return
			}
			if errors.Is(err, user.ErrPasswordTooLong) {
				httpx.Error(c, http.StatusBadRequest, err.Error())
				return
			}
			httpx.Internal(c, "Registration failed", err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      user.LoginRequest  true  "Credentials"
// @Success      200   {object}  user.AuthResponse
// @Failure      400   {object}  httpx.HTTPError
// @Failure      429   {object}  httpx.HTTPError
// @Router       /api/auth/login [post]
func loginHandler(svc accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.LoginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BindError(c, err)
			return
		}
		out, err := svc.Login(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				httpx.Error(c, http.StatusBadRequest, "Invalid credentials")
				return
			}
			httpx.Internal(c, "Login failed", err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  user.User
// @Failure      401  {object}  httpx.HTTPError
// @Failure      403  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Router       /api/auth/me [get]
func meHandler(svc accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.GetSelf(c.Request.Context(), identity(c).ID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				httpx.Error(c, http.StatusNotFound, "User not found")
				return
			}
			httpx.Internal(c, "Failed to fetch user", err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
