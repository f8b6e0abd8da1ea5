package validator

// Validator bundles struct validation and business rule validation behind a
// single entry point for services and handlers.
type Validator struct {
	*BusinessValidator
}

// New creates a validator with all business rules registered
func New() *Validator {
	return &Validator{BusinessValidator: NewBusinessValidator()}
}

// GetBusinessValidator exposes the business rule validator
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.BusinessValidator
}
