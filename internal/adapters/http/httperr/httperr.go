// Package httperr отображает доменные ошибки в HTTP статусы.
package httperr

import (
	"errors"
	"net/http"

	"studynotes/internal/domain/entities"
	"studynotes/internal/domain/services"
)

// StatusOf возвращает HTTP статус для доменной ошибки.
// Неизвестные ошибки считаются внутренними.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrNoteNotFound),
		errors.Is(err, entities.ErrCategoryNotFound),
		errors.Is(err, entities.ErrCommentNotFound):
		return http.StatusNotFound

	case errors.Is(err, services.ErrEmailAlreadyExists),
		errors.Is(err, entities.ErrCategoryAlreadyExists):
		return http.StatusConflict

	case errors.Is(err, entities.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidJWTToken),
		errors.Is(err, services.ErrExpiredJWTToken):
		return http.StatusUnauthorized

	case errors.Is(err, entities.ErrInvalidCategory),
		errors.Is(err, entities.ErrEmptyTitle),
		errors.Is(err, entities.ErrTitleTooLong),
		errors.Is(err, entities.ErrEmptyComment),
		errors.Is(err, entities.ErrEmptyCategoryName),
		errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyName),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidPassword):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// Message возвращает тело ошибки для клиента. Внутренние детали
// не раскрываются.
func Message(err error) string {
	if StatusOf(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
