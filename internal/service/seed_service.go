package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/repository"
)

// seedNamespace пространство имён для детерминированных ID демо-данных.
var seedNamespace = uuid.MustParse("6f1c8a52-3a43-4b7e-9d0c-1f2f4d6a9e10")

// SeedID возвращает стабильный ID сущности демо-данных по её ключу, например "profile:1".
func SeedID(key string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(key))
}

type SeedRepository interface {
	Replace(ctx context.Context, data repository.SeedData) error
}

// SeedService заполняет базу демонстрационными профилями, договорами и работами.
type SeedService struct {
	repo SeedRepository
}

// NewSeedService создаёт новый сервис для генерации данных.
func NewSeedService(repo SeedRepository) *SeedService {
	return &SeedService{repo: repo}
}

// Seed заменяет содержимое базы демо-данными и возвращает их.
func (s *SeedService) Seed(ctx context.Context) (repository.SeedData, error) {
	data := BuildSeedData()
	if err := s.repo.Replace(ctx, data); err != nil {
		return repository.SeedData{}, fmt.Errorf("seed service: %w", err)
	}
	return data, nil
}

type seedProfile struct {
	first, last, profession, balance, kind string
}

type seedContract struct {
	terms, status string
	client, contractor int
}

type seedJob struct {
	description, price string
	contract           int
	paidAt             string
}

// BuildSeedData собирает демо-набор: четыре клиента, четыре подрядчика, девять договоров.
func BuildSeedData() repository.SeedData {
	profiles := []seedProfile{
		{"Harry", "Potter", "Wizard", "1150", models.ProfileTypeClient},
		{"Mr", "Robot", "Hacker", "231.11", models.ProfileTypeClient},
		{"John", "Snow", "Knows nothing", "451.3", models.ProfileTypeClient},
		{"Ash", "Kethcum", "Pokemon master", "1.3", models.ProfileTypeClient},
		{"John", "Lenon", "Musician", "64", models.ProfileTypeContractor},
		{"Linus", "Torvalds", "Programmer", "1214", models.ProfileTypeContractor},
		{"Alan", "Turing", "Programmer", "22", models.ProfileTypeContractor},
		{"Aragorn", "II Elessar Telcontarvalds", "Fighter", "314", models.ProfileTypeContractor},
	}
	contracts := []seedContract{
		{"bla bla bla", models.ContractStatusTerminated, 1, 5},
		{"bla bla bla", models.ContractStatusInProgress, 1, 6},
		{"bla bla bla", models.ContractStatusInProgress, 2, 6},
		{"bla bla bla", models.ContractStatusInProgress, 2, 7},
		{"bla bla bla", models.ContractStatusNew, 3, 8},
		{"bla bla bla", models.ContractStatusInProgress, 3, 7},
		{"bla bla bla", models.ContractStatusInProgress, 4, 7},
		{"bla bla bla", models.ContractStatusInProgress, 4, 6},
		{"bla bla bla", models.ContractStatusInProgress, 4, 8},
	}
	jobs := []seedJob{
		{"work", "200", 1, ""},
		{"work", "201", 2, ""},
		{"work", "202", 3, ""},
		{"work", "200", 4, ""},
		{"work", "200", 7, ""},
		{"work", "2020", 7, "2020-08-15T19:11:26.737Z"},
		{"work", "200", 2, "2020-08-15T19:11:26.737Z"},
		{"work", "200", 3, "2020-08-16T19:11:26.737Z"},
		{"work", "200", 1, "2020-08-17T19:11:26.737Z"},
		{"work", "200", 5, "2020-08-17T19:11:26.737Z"},
		{"work", "21", 1, "2020-08-10T19:11:26.737Z"},
		{"work", "21", 2, "2020-08-15T19:11:26.737Z"},
		{"work", "121", 3, "2020-08-15T19:11:26.737Z"},
		{"work", "121", 3, "2020-08-14T23:11:26.737Z"},
	}

	var data repository.SeedData
	for i, p := range profiles {
		data.Profiles = append(data.Profiles, models.Profile{
			ID:         SeedID(fmt.Sprintf("profile:%d", i+1)),
			FirstName:  p.first,
			LastName:   p.last,
			Profession: p.profession,
			Balance:    decimal.RequireFromString(p.balance),
			Type:       p.kind,
		})
	}
	for i, c := range contracts {
		data.Contracts = append(data.Contracts, models.Contract{
			ID:           SeedID(fmt.Sprintf("contract:%d", i+1)),
			Terms:        c.terms,
			Status:       c.status,
			ClientID:     SeedID(fmt.Sprintf("profile:%d", c.client)),
			ContractorID: SeedID(fmt.Sprintf("profile:%d", c.contractor)),
		})
	}
	for i, j := range jobs {
		job := models.Job{
			ID:          SeedID(fmt.Sprintf("job:%d", i+1)),
			Description: j.description,
			Price:       decimal.RequireFromString(j.price),
			ContractID:  SeedID(fmt.Sprintf("contract:%d", j.contract)),
		}
		if j.paidAt != "" {
			paidAt, err := time.Parse(time.RFC3339, j.paidAt)
			if err != nil {
				panic(fmt.Sprintf("seed: некорректная дата оплаты %q", j.paidAt))
			}
			job.Paid = true
			job.PaymentDate = &paidAt
		}
		data.Jobs = append(data.Jobs, job)
	}

	return data
}
