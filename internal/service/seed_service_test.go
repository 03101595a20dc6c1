package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/contract-ledger/internal/models"
)

func TestBuildSeedData_IsConsistent(t *testing.T) {
	data := BuildSeedData()

	require.Len(t, data.Profiles, 8)
	require.Len(t, data.Contracts, 9)
	require.Len(t, data.Jobs, 14)

	types := map[string]string{}
	for _, p := range data.Profiles {
		types[p.ID.String()] = p.Type
	}
	contracts := map[string]bool{}
	for _, c := range data.Contracts {
		assert.Equal(t, models.ProfileTypeClient, types[c.ClientID.String()])
		assert.Equal(t, models.ProfileTypeContractor, types[c.ContractorID.String()])
		contracts[c.ID.String()] = true
	}
	for _, j := range data.Jobs {
		assert.True(t, contracts[j.ContractID.String()])
		assert.Equal(t, j.Paid, j.PaymentDate != nil)
	}
}

func TestSeedID_IsStable(t *testing.T) {
	assert.Equal(t, SeedID("profile:1"), SeedID("profile:1"))
	assert.NotEqual(t, SeedID("profile:1"), SeedID("profile:2"))
	assert.Equal(t, SeedID("profile:1"), BuildSeedData().Profiles[0].ID)
}

func TestSeedService_Seed(t *testing.T) {
	repo := new(mockSeedRepo)
	svc := NewSeedService(repo)
	ctx := context.Background()

	repo.On("Replace", ctx, mock.Anything).Return(nil).Once()
	data, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Jobs, 14)

	repo.On("Replace", ctx, mock.Anything).Return(errors.New("boom")).Once()
	_, err = svc.Seed(ctx)
	assert.ErrorContains(t, err, "boom")
}
