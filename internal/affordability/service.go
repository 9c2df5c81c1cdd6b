package affordability

import (
	"math"

	"github.com/sirupsen/logrus"

	"taipeihouse/server/internal/database"
	"taipeihouse/server/internal/models"
)

// Service runs the affordability search against the catalog.
type Service struct {
	db     *database.Database
	logger *logrus.Logger
	limit  int
}

func NewService(db *database.Database, logger *logrus.Logger, limit int) *Service {
	return &Service{db: db, logger: logger, limit: limit}
}

// Suggest computes the purchase budget for the input, retrieves every
// listing whose implied price at the desired size fits, and attaches
// amortization metrics to each. It returns ErrInvalidInput for unusable
// input and ErrBudgetInsufficient when no listing fits; both are ordinary
// caller-visible outcomes.
func (s *Service) Suggest(in Input) ([]models.Suggestion, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	maxBudget := MaxBudget(in)
	candidates, err := s.db.FindSuggestionCandidates(in.DesiredSize, maxBudget, s.limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to query suggestion candidates")
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrBudgetInsufficient
	}

	suggestions := make([]models.Suggestion, 0, len(candidates))
	for _, c := range candidates {
		loanNeeded := math.Max(0, c.TotalEstimatedPrice-in.DownPayment)
		monthlyPayment := MonthlyPayment(in, loanNeeded)

		dtiRatio := 0.0
		yearsToPayOff := float64(YearsToPayOffSentinel)
		if in.MonthlyIncome > 0 {
			dtiRatio = monthlyPayment / in.MonthlyIncome * 100
			yearsToPayOff = c.TotalEstimatedPrice / (in.MonthlyIncome * 12)
		}

		suggestions = append(suggestions, models.Suggestion{
			PropertyID:     c.PropertyID,
			DistrictName:   c.DistrictName,
			BuildingType:   c.BuildingType,
			Address:        c.Address,
			PricePerSqm:    c.PricePerSqm,
			TotalPrice:     c.TotalEstimatedPrice,
			MonthlyPayment: monthlyPayment,
			DTIRatio:       dtiRatio,
			YearsToPayOff:  yearsToPayOff,
		})
	}
	return suggestions, nil
}
