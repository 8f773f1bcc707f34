package validation

import (
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
)

// Validator checks request bodies before they reach a handler. Rules about
// which pages are accepted belong to the scraper; this only checks shape.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateURLRequest requires a non-blank url field and trims it in place.
func (v *Validator) ValidateURLRequest(req *dto.URLRequest) *domain.DomainError {
	if req == nil {
		return domain.NewInvalidInputError("Request body is required")
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return domain.NewInvalidInputError("Field 'url' is required").WithContext("field", "url")
	}
	return nil
}
