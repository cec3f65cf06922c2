package models

import (
	"errors"
	"fmt"
	"strings"
)

// Стандартные ошибки ядра игры. Все они локальны и восстановимы на стороне
// вызывающего: ни одна из них не приводит к частичной мутации состояния.
var (
	// ErrValidation - некорректный или отсутствующий обязательный ввод.
	ErrValidation = errors.New("validation error")
	// ErrInvalidOption - указанный optionId не найден среди допустимых опций.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInsufficientResources - не хватает ресурсов на стоимость опции.
	ErrInsufficientResources = errors.New("insufficient resources")
	// ErrGameOver - попытка изменить уже завершённое состояние.
	ErrGameOver = errors.New("game is already over")

	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
)

// ResourceShortfall - недостача одного вида ресурса.
type ResourceShortfall struct {
	Resource string `json:"resource"`
	Missing  int    `json:"missing"`
}

// InsufficientResourcesError несёт список недостач по видам ресурсов.
// Сопоставляется с ErrInsufficientResources через errors.Is.
type InsufficientResourcesError struct {
	Shortfalls []ResourceShortfall
}

func (e *InsufficientResourcesError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s (missing %d)", s.Resource, s.Missing))
	}
	return "insufficient resources: " + strings.Join(parts, ", ")
}

func (e *InsufficientResourcesError) Unwrap() error {
	return ErrInsufficientResources
}
