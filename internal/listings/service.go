package listings

import (
	"github.com/sirupsen/logrus"

	"taipeihouse/server/internal/catalog"
	"taipeihouse/server/internal/database"
	"taipeihouse/server/internal/models"
)

// Query bundles the parsed filter, sort and pagination inputs for one
// listing search.
type Query struct {
	Filters  catalog.Filters
	SortBy   string
	Order    string
	Page     int
	PageSize int
}

// Page is one page of listings with the metadata a listing view renders.
type Page struct {
	Records    []models.Listing `json:"records"`
	TotalCount int              `json:"total_count"`
	TotalPages int              `json:"total_pages"`
	PageRange  []interface{}    `json:"page_range"`
}

// Service composes the predicate builder, sort resolver and pagination
// engine over the store into a single listing search call.
type Service struct {
	db     *database.Database
	logger *logrus.Logger
}

func NewService(db *database.Database, logger *logrus.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// GetListings runs the count and data queries under one shared predicate
// and returns the requested page plus pagination metadata.
func (s *Service) GetListings(q Query) (*Page, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = catalog.DefaultPageSize
	}

	predicate, args := catalog.BuildPredicate(q.Filters)

	totalCount, err := s.db.CountListings(predicate, args)
	if err != nil {
		return nil, err
	}
	totalPages := catalog.TotalPages(totalCount, q.PageSize)

	sortColumn, sortDirection := catalog.ResolveSort(q.SortBy, q.Order)
	records, err := s.db.GetListings(predicate, args, sortColumn, sortDirection, q.PageSize, catalog.Offset(q.Page, q.PageSize))
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.Listing{}
	}

	return &Page{
		Records:    records,
		TotalCount: totalCount,
		TotalPages: totalPages,
		PageRange:  catalog.PageRange(q.Page, totalPages),
	}, nil
}

// GetListing returns one listing by id, or database.ErrNotFound.
func (s *Service) GetListing(propertyID int64) (*models.Listing, error) {
	listing, err := s.db.GetListingByID(propertyID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, database.ErrNotFound
	}
	return listing, nil
}
