package service

import (
	"errors"
	"fmt"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"
)

// notFound converts repository.ErrNotFound into a *model.NotFoundError naming the entity.
func notFound(entity string, id fmt.Stringer, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &model.NotFoundError{Entity: entity, ID: id.String()}
	}
	return err
}

// reason classifies an engine error for the rejection counter.
func reason(err error) string {
	switch {
	case errors.Is(err, model.ErrValidation):
		return "validation"
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, model.ErrInvalidTransition):
		return "invalid_transition"
	}
	return "internal"
}
