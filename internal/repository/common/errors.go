package common

import "errors"

// Общие ошибки для всех репозиториев. Сентинелы конкретных репозиториев оборачивают их,
// поэтому errors.Is(err, ErrNotFound) работает для любой сущности.
var (
	ErrNotFound = errors.New("entity not found")
	ErrConflict = errors.New("entity state changed concurrently")
)
