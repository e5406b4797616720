package middleware

import (
	"context"

	"halo/models"
	"halo/utils"

	"github.com/gin-gonic/gin"
)

// DoctorLookup and PatientLookup resolve the role-specific identity of a user.
type DoctorLookup interface {
	GetByUserID(ctx context.Context, userID string) (*models.Doctor, error)
}

type PatientLookup interface {
	GetByUserID(ctx context.Context, userID string) (*models.Patient, error)
}

// RequireRole aborts with 403 unless the authenticated user has one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		utils.RespondError(c, utils.NewForbidden("Access denied."))
		c.Abort()
	}
}

// ResolveIdentity stores the caller's doctor or patient ID in the context.
// Users with other roles pass through untouched.
func ResolveIdentity(doctors DoctorLookup, patients PatientLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		switch Role(c) {
		case models.RoleDoctor:
			d, err := doctors.GetByUserID(ctx, UserID(c))
			if err != nil {
				if utils.IsKind(err, utils.KindNotFound) {
					err = utils.NewForbidden("No doctor profile for this account.")
				}
				utils.RespondError(c, err)
				c.Abort()
				return
			}
			c.Set(ctxDoctor, d.ID)
		case models.RolePatient:
			p, err := patients.GetByUserID(ctx, UserID(c))
			if err != nil {
				if utils.IsKind(err, utils.KindNotFound) {
					err = utils.NewForbidden("No patient profile for this account.")
				}
				utils.RespondError(c, err)
				c.Abort()
				return
			}
			c.Set(ctxPatient, p.ID)
		}
		c.Next()
	}
}
