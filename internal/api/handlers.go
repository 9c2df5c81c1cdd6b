package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taipeihouse/server/internal/affordability"
	"taipeihouse/server/internal/catalog"
	"taipeihouse/server/internal/database"
	"taipeihouse/server/internal/listings"
	"taipeihouse/server/internal/models"
)

type Handler struct {
	db       *database.Database
	logger   *logrus.Logger
	listings *listings.Service
	solver   *affordability.Service
	pageSize int
}

// ListingQuery captures the raw listing-view request parameters.
type ListingQuery struct {
	catalog.Filters
	SortBy string `form:"sort_by"`
	Order  string `form:"order"`
	Page   int    `form:"page"`
}

func NewHandler(db *database.Database, logger *logrus.Logger, pageSize, suggestionLimit int) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:       db,
		logger:   logger,
		listings: listings.NewService(db, logger),
		solver:   affordability.NewService(db, logger, suggestionLimit),
		pageSize: pageSize,
	}
}

func (h *Handler) GetListings(c *gin.Context) {
	var query ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.WithError(err).Error("Failed to parse listing query")
	}

	page, err := h.listings.GetListings(listings.Query{
		Filters:  query.Filters,
		SortBy:   query.SortBy,
		Order:    query.Order,
		Page:     query.Page,
		PageSize: h.pageSize,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to get listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	listing, err := h.listings.GetListing(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing"})
		return
	}

	listing.TransactionDate = formatDateForInput(listing.TransactionDate)
	c.JSON(http.StatusOK, listing)
}

func (h *Handler) CreateListing(c *gin.Context) {
	var input models.ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.WithError(err).Error("Failed to parse listing input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}
	input.TransactionDate = formatDateForDB(input.TransactionDate)

	id, err := h.db.CreateListing(input)
	if errors.Is(err, database.ErrDistrictNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown district"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) UpdateListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	var input models.ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.WithError(err).Error("Failed to parse listing input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}
	input.TransactionDate = formatDateForDB(input.TransactionDate)

	err = h.db.UpdateListing(id, input)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case errors.Is(err, database.ErrDistrictNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown district"})
	case err != nil:
		h.logger.WithError(err).Error("Failed to update listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

func (h *Handler) DeleteListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	err = h.db.DeleteListing(id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case err != nil:
		h.logger.WithError(err).Error("Failed to delete listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

func (h *Handler) GetFacets(c *gin.Context) {
	facets, err := h.db.GetFacets()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get facets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get facets"})
		return
	}

	c.JSON(http.StatusOK, facets)
}

func (h *Handler) GetDistrictStats(c *gin.Context) {
	stats, err := h.db.GetDistrictStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get district stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get district stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Suggest(c *gin.Context) {
	var input affordability.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input"})
		return
	}

	suggestions, err := h.solver.Suggest(input)
	switch {
	case errors.Is(err, affordability.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input"})
	case errors.Is(err, affordability.ErrBudgetInsufficient):
		c.JSON(http.StatusOK, gin.H{"error": "budget_insufficient", "candidates": []models.Suggestion{}})
	case err != nil:
		h.logger.WithError(err).Error("Failed to compute suggestions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute suggestions"})
	default:
		c.JSON(http.StatusOK, gin.H{"candidates": suggestions})
	}
}
