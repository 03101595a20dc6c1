// Package policy проверяет роль и владение ресурсом до обращения к хранилищу.
package policy

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
)

// Причины отказа. Роль и владение различаются, чтобы клиент понимал, что именно не так.
const (
	ReasonWrongRole = "неподходящая роль"
	ReasonNotOwner  = "не владелец ресурса"
)

// Capability описывает, требует ли операция вызывающего.
type Capability int

const (
	// Authenticated операции выполняются от имени профиля.
	Authenticated Capability = iota
	// Anonymous операции (админские отчёты) не требуют профиля и не зависят от роли.
	Anonymous
)

// RequireCaller проверяет наличие профиля для операций, которым он нужен.
func RequireCaller(capability Capability, caller *models.Profile) error {
	if capability == Anonymous {
		return nil
	}
	if caller == nil {
		return apperror.ErrUnauthorized
	}
	return nil
}

// RequireRole пропускает только профиль с указанной ролью.
func RequireRole(caller *models.Profile, role string) error {
	if caller == nil {
		return apperror.ErrUnauthorized
	}
	if caller.Type != role {
		return apperror.Newf(apperror.ErrCodeForbidden, "%s: операция доступна только для роли %s", ReasonWrongRole, role)
	}
	return nil
}

// RequireOwner пропускает только владельца ресурса.
func RequireOwner(caller *models.Profile, ownerID uuid.UUID) error {
	if caller == nil {
		return apperror.ErrUnauthorized
	}
	if caller.ID != ownerID {
		return apperror.New(apperror.ErrCodeForbidden, ReasonNotOwner+": операция над чужим счётом запрещена")
	}
	return nil
}

// RequireParty пропускает клиента или подрядчика договора.
func RequireParty(caller *models.Profile, contract *models.Contract) error {
	if caller == nil {
		return apperror.ErrUnauthorized
	}
	if !contract.HasParty(caller.ID) {
		return apperror.New(apperror.ErrCodeForbidden, ReasonNotOwner+": профиль не является стороной договора")
	}
	return nil
}
