package handlers

import (
	"net/http"

	"halo/services/user"
	"halo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the /admin routes.
type AdminHandler struct {
	UserService user.UserService
}

func NewAdminHandler(svc user.UserService) *AdminHandler {
	return &AdminHandler{UserService: svc}
}

func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) GetAllPatientsHandler(c *gin.Context) {
	patients, err := h.UserService.GetAllPatients(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

// DeleteUserHandler handles DELETE /admin/delete/user/:id.
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.UserService.DeleteUser(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.GetLogger().Info("user deleted by admin", zap.String("userId", id))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
