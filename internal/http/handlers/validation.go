package handlers

import (
	"strings"

	"github.com/rogerio-castellano/sweet-shop/pkg/apierror"
)

func validateSweet(s SweetRequest) []apierror.FieldError {
	errs := []apierror.FieldError{}
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, apierror.FieldError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(s.Category) == "" {
		errs = append(errs, apierror.FieldError{Field: "Category", Description: "Category is required"})
	}
	if !s.Price.IsPositive() {
		errs = append(errs, apierror.FieldError{Field: "Price", Description: "Price must be greater than zero"})
	}
	if s.Quantity < 0 {
		errs = append(errs, apierror.FieldError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	return errs
}

// applyUpdate merges the present fields of u into current and validates the result.
func applyUpdate(current SweetRequest, u UpdateSweetRequest) (SweetRequest, []apierror.FieldError) {
	if u.Name != nil {
		current.Name = strings.TrimSpace(*u.Name)
	}
	if u.Category != nil {
		current.Category = strings.TrimSpace(*u.Category)
	}
	if u.Price != nil {
		current.Price = *u.Price
	}
	if u.Quantity != nil {
		current.Quantity = *u.Quantity
	}
	return current, validateSweet(current)
}
