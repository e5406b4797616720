package handlers

import (
	"net/http"

	"halo/middleware"
	"halo/models"
	"halo/services/user"
	"halo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// SignupHandler handles POST /user/signup.
func (h *UserHandler) SignupHandler(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	resp, err := h.UserService.Signup(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	setSessionCookie(c, resp.Token, resp.ExpiresAt)
	c.JSON(http.StatusCreated, gin.H{"message": "Signup successful. Please verify your email.", "user": resp.User})
}

// LoginHandler handles POST /user/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	_, cookieErr := c.Cookie(middleware.TokenCookie)
	resp, err := h.UserService.Login(c.Request.Context(), req, cookieErr == nil)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	setSessionCookie(c, resp.Token, resp.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful.", "user": resp.User})
}

// LogoutHandler handles GET /user/logout.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		utils.JSONError(c, http.StatusBadRequest, "No active session.", "")
		return
	}
	if err := h.UserService.Logout(c.Request.Context(), token); err != nil {
		utils.RespondError(c, err)
		return
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
}

func (h *UserHandler) ProfileHandler(c *gin.Context) {
	profile, err := h.UserService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccountHandler handles DELETE /user/delete. The password must be confirmed.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Password is required.", err.Error())
		return
	}

	userID := middleware.UserID(c)
	if err := h.UserService.DeleteAccount(c.Request.Context(), userID, req.Password, middleware.Token(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.GetLogger().Info("account deleted", zap.String("userId", userID))
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully."})
}

func (h *UserHandler) ForgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email is required.", err.Error())
		return
	}
	if err := h.UserService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent."})
}

// ResetPasswordHandler handles POST /user/reset-password/:token.
func (h *UserHandler) ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Password is required.", err.Error())
		return
	}
	if err := h.UserService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully."})
}

func (h *UserHandler) VerifyEmailHandler(c *gin.Context) {
	if err := h.UserService.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully."})
}

func (h *UserHandler) ResendVerificationHandler(c *gin.Context) {
	verified, err := h.UserService.ResendVerification(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if verified {
		c.JSON(http.StatusOK, gin.H{"message": "Email is already verified.", "verified": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent.", "verified": false})
}
