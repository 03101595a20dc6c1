package models

// ProfileType роли участников.
const (
	ProfileTypeClient     = "client"
	ProfileTypeContractor = "contractor"
)

// ContractStatus константы статусов договоров.
const (
	ContractStatusNew        = "new"
	ContractStatusInProgress = "in_progress"
	ContractStatusTerminated = "terminated"
)

// ValidProfileTypes список валидных ролей.
var ValidProfileTypes = map[string]struct{}{
	ProfileTypeClient:     {},
	ProfileTypeContractor: {},
}

// ValidContractStatuses список валидных статусов договоров.
var ValidContractStatuses = map[string]struct{}{
	ContractStatusNew:        {},
	ContractStatusInProgress: {},
	ContractStatusTerminated: {},
}
