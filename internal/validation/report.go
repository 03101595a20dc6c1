package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
)

// Константы валидации отчётов
const (
	DefaultBestClientsLimit = 2
	MaxReportLimit          = 100
)

const dateLayout = "2006-01-02"

// instantStep шаг, на который сдвигается точный end. TIMESTAMPTZ хранит микросекунды,
// меньший шаг сервер округлит обратно до end.
const instantStep = time.Microsecond

// DateRange полуинтервал [From, To) по дате оплаты.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseReportRange разбирает включительный диапазон [start, end].
// Дата без времени в end покрывает весь день.
func ParseReportRange(start, end string) (DateRange, error) {
	from, _, err := parseBound("start", start)
	if err != nil {
		return DateRange{}, err
	}

	to, dateOnly, err := parseBound("end", end)
	if err != nil {
		return DateRange{}, err
	}
	if dateOnly {
		to = to.AddDate(0, 0, 1)
	} else {
		to = to.Truncate(instantStep).Add(instantStep)
	}

	if !from.Before(to) {
		return DateRange{}, apperror.New(apperror.ErrCodeInvalidParameter, "start не может быть позже end")
	}

	return DateRange{From: from, To: to}, nil
}

func parseBound(name, raw string) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, apperror.Newf(apperror.ErrCodeInvalidParameter, "%s обязателен", name)
	}

	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}

	return time.Time{}, false, apperror.Newf(apperror.ErrCodeInvalidParameter, "%s: некорректная дата %q", name, raw)
}

// ParseLimit разбирает необязательный лимит строк отчёта.
func ParseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBestClientsLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Newf(apperror.ErrCodeInvalidParameter, "limit должен быть целым числом: %q", raw)
	}
	return limit, ValidateLimit(limit)
}

// ValidateLimit проверяет, что лимит положительный и не превышает максимум.
func ValidateLimit(limit int) error {
	if limit < 1 {
		return apperror.New(apperror.ErrCodeInvalidParameter, "limit должен быть положительным целым числом")
	}
	if limit > MaxReportLimit {
		return apperror.Newf(apperror.ErrCodeInvalidParameter, "limit не может превышать %d", MaxReportLimit)
	}
	return nil
}
