package usecase

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
)

const DefaultProbability = 50

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	errInvalidNumber = errors.New("must be a valid number")
	errNegative      = errors.New("must not be negative")
)

// ParseMoney accepts "1234.56", "1.234,56", "1234,56" and "R$ 1.234,56". Empty input is 0.
func ParseMoney(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errInvalidNumber
	}
	if v < 0 {
		return 0, errNegative
	}
	return v, nil
}

// ParseProbability expects an integer percentage. Empty input is DefaultProbability.
func ParseProbability(raw string) (int, error) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if s == "" {
		return DefaultProbability, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	if p < 0 || p > 100 {
		return 0, errors.New("must be between 0 and 100")
	}
	return p, nil
}

func parseISODate(raw string) (time.Time, error) {
	return time.Parse(lintra.DateLayout, strings.TrimSpace(raw))
}

// dealFields é o resultado validado de um DealInput.
type dealFields struct {
	Title         string
	Description   string
	Value         float64
	Probability   int
	ContactID     string
	OwnerID       string
	ExpectedClose time.Time
	StageID       string
	Profile       DealProfile
}

func ValidateDealInput(in DealInput) (dealFields, []ValidationError) {
	var errs []ValidationError
	f := dealFields{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		ContactID:   in.ContactID,
		OwnerID:     strings.TrimSpace(in.OwnerID),
		StageID:     in.StageID,
		Profile:     in.DealProfile,
	}

	if f.Title == "" {
		errs = append(errs, ValidationError{"title", "is required"})
	}
	if f.OwnerID == "" {
		errs = append(errs, ValidationError{"ownerId", "is required"})
	}
	if strings.TrimSpace(in.ExpectedClose) == "" {
		errs = append(errs, ValidationError{"expectedClose", "is required"})
	} else if t, err := parseISODate(in.ExpectedClose); err != nil {
		errs = append(errs, ValidationError{"expectedClose", "must be a valid date (YYYY-MM-DD)"})
	} else {
		f.ExpectedClose = t
	}

	if v, err := ParseMoney(string(in.Value)); err != nil {
		errs = append(errs, ValidationError{"value", err.Error()})
	} else {
		f.Value = v
	}
	if p, err := ParseProbability(string(in.Probability)); err != nil {
		errs = append(errs, ValidationError{"probability", err.Error()})
	} else {
		f.Probability = p
	}
	return f, errs
}
