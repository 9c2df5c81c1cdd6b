package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taipeihouse/server/config"
	"taipeihouse/server/internal/database"
)

func SetupRoutes(router *gin.Engine, db *database.Database, logger *logrus.Logger, cfg *config.Config) {
	handler := NewHandler(db, logger, cfg.Listings.PageSize, cfg.Listings.SuggestionLimit)

	api := router.Group("/api")
	{
		api.GET("/listings", handler.GetListings)
		api.GET("/listings/:id", handler.GetListing)
		api.POST("/listings", handler.CreateListing)
		api.PUT("/listings/:id", handler.UpdateListing)
		api.DELETE("/listings/:id", handler.DeleteListing)
		api.GET("/facets", handler.GetFacets)
		api.GET("/stats/districts", handler.GetDistrictStats)
		api.POST("/suggestions", handler.Suggest)
	}
}
