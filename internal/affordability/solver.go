package affordability

import (
	"errors"
	"math"
)

var (
	// ErrInvalidInput marks malformed or missing numeric input, as
	// opposed to a valid search that found nothing.
	ErrInvalidInput = errors.New("invalid affordability input")

	// ErrBudgetInsufficient marks a valid computation whose budget
	// matches no listing at all.
	ErrBudgetInsufficient = errors.New("budget insufficient")
)

// debtServiceCeiling caps the affordable monthly installment at this share
// of monthly income.
const debtServiceCeiling = 0.6

// YearsToPayOffSentinel is reported when income is zero. It is a display
// sentinel meaning "never", not a real duration.
const YearsToPayOffSentinel = 999

// Input holds the affordability search parameters.
type Input struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	DownPayment     float64 `json:"down_payment"`
	DesiredSize     float64 `json:"desired_size"`
	InterestRatePct float64 `json:"interest_rate"`
	LoanTermYears   int     `json:"loan_term"`
}

// Validate rejects inputs no loan can be computed from. A zero income is
// allowed; it yields sentinel metrics rather than an error.
func (in Input) Validate() error {
	if in.MonthlyIncome < 0 || in.DownPayment < 0 || in.InterestRatePct < 0 {
		return ErrInvalidInput
	}
	if in.DesiredSize <= 0 || in.LoanTermYears <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// monthlyRate is the monthly interest rate derived from the annual
// percentage.
func (in Input) monthlyRate() float64 {
	return (in.InterestRatePct / 100) / 12
}

// installments is the total number of monthly payments over the term.
func (in Input) installments() int {
	return in.LoanTermYears * 12
}

// MaxBudget inverts the annuity present-value formula: the largest loan the
// income can service at the debt ceiling, plus the down payment.
func MaxBudget(in Input) float64 {
	r := in.monthlyRate()
	n := in.installments()
	maxMonthlyPayment := in.MonthlyIncome * debtServiceCeiling

	var maxLoan float64
	if r > 0 {
		maxLoan = maxMonthlyPayment * (1 - math.Pow(1+r, -float64(n))) / r
	} else {
		maxLoan = maxMonthlyPayment * float64(n)
	}
	return maxLoan + in.DownPayment
}

// MonthlyPayment is the forward annuity payment for the given loan
// principal under the input's rate and term.
func MonthlyPayment(in Input, loanNeeded float64) float64 {
	r := in.monthlyRate()
	n := in.installments()
	if r > 0 {
		pow := math.Pow(1+r, float64(n))
		return loanNeeded * (r * pow) / (pow - 1)
	}
	if n > 0 {
		return loanNeeded / float64(n)
	}
	return 0
}
