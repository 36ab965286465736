package api

import (
	"LoveAI/backend/go/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all the routes for the journal service.
func RegisterRoutes(router *gin.Engine, api *API, jwtSecret string) {
	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware(jwtSecret))

	profile := v1.Group("/profile")
	{
		profile.GET("", api.GetProfileHandler)
		profile.PUT("", api.SaveProfileHandler)
	}

	prospects := v1.Group("/prospects")
	{
		prospects.POST("", api.CreateProspectHandler)
		prospects.GET("", api.ListProspectsHandler)
		prospects.GET("/:id", api.GetProspectHandler)
		prospects.PUT("/:id", api.UpdateProspectHandler)
		prospects.DELETE("/:id", api.DeleteProspectHandler)
		prospects.POST("/:id/archive", api.ArchiveProspectHandler)
		prospects.POST("/:id/restore", api.RestoreProspectHandler)

		prospects.POST("/:id/photo", api.UploadPhotoHandler)
		prospects.GET("/:id/photo", api.GetPhotoHandler)
		prospects.DELETE("/:id/photo", api.DeletePhotoHandler)

		prospects.POST("/:id/notes", api.CreateNoteHandler)
		prospects.GET("/:id/notes", api.ListNotesHandler)
		prospects.PUT("/:id/notes/:noteId", api.UpdateNoteHandler)
		prospects.DELETE("/:id/notes/:noteId", api.DeleteNoteHandler)
	}

	dates := v1.Group("/dates")
	{
		dates.POST("", api.CreateDateHandler)
		dates.GET("", api.ListDatesHandler)
		dates.PUT("/:id", api.UpdateDateHandler)
		dates.DELETE("/:id", api.DeleteDateHandler)
	}
}
