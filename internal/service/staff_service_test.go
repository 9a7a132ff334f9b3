package service_test

import (
	"context"
	"testing"

	"nailpos/internal/dto"
	"nailpos/internal/model"
	"nailpos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStaffService() (service.StaffService, *stubStaffRepo) {
	repo := newStubStaffRepo()
	return service.NewStaffService(repo, &recordingPublisher{}), repo
}

func TestStaffService_Create_HashesPIN(t *testing.T) {
	svc, repo := newStaffService()
	resp, err := svc.Create(context.Background(), admin, dto.CreateStaffRequest{
		Name: "Vale", Role: model.RoleStaff, CommissionPct: dec("35.555"), PIN: "4821",
	})
	require.NoError(t, err)
	assertDec(t, "35.56", resp.CommissionPct)

	var stored *model.Staff
	for _, st := range repo.rows {
		stored = st
	}
	require.NotNil(t, stored)
	assert.NotEqual(t, "4821", stored.PinHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PinHash), []byte("4821")))
}

func TestStaffService_CommissionOutOfRange(t *testing.T) {
	svc, _ := newStaffService()
	for _, pct := range []string{"-1", "100.01", "250"} {
		_, err := svc.Create(context.Background(), admin, dto.CreateStaffRequest{
			Name: "Vale", Role: model.RoleStaff, CommissionPct: dec(pct), PIN: "4821",
		})
		require.ErrorIs(t, err, service.ErrValidation, pct)
		var fe *service.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "commission_pct", fe.Field)
	}

	for _, pct := range []string{"0", "100"} {
		_, err := svc.Create(context.Background(), admin, dto.CreateStaffRequest{
			Name: "Vale", Role: model.RoleStaff, CommissionPct: dec(pct), PIN: "4821",
		})
		assert.NoError(t, err, pct)
	}
}

func TestHashPIN_Rules(t *testing.T) {
	_, err := service.HashPIN("123")
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = service.HashPIN("12a4")
	assert.ErrorIs(t, err, service.ErrValidation)

	hash, err := service.HashPIN("1234")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("1234")))
}

func TestStaffService_VerifyPIN(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()
	resp, err := svc.Create(ctx, admin, dto.CreateStaffRequest{Name: "Vale", Role: model.RoleStaff, PIN: "4821"})
	require.NoError(t, err)
	id := mustUUID(t, resp.ID)

	ok, err := svc.VerifyPIN(ctx, tenantA, id, "4821")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPIN(ctx, tenantA, id, "0000")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.SetActive(ctx, admin, id, false))
	ok, err = svc.VerifyPIN(ctx, tenantA, id, "4821")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaffService_OwnerRoleRules(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, dto.CreateStaffRequest{Name: "Boss", Role: model.RoleOwner, PIN: "4821"})
	assert.ErrorIs(t, err, service.ErrValidation)

	resp, err := svc.Create(ctx, owner, dto.CreateStaffRequest{Name: "Boss", Role: model.RoleOwner, PIN: "4821"})
	require.NoError(t, err)
	id := mustUUID(t, resp.ID)

	demote := model.RoleStaff
	_, err = svc.Update(ctx, admin, id, dto.UpdateStaffRequest{Role: &demote})
	assert.ErrorIs(t, err, service.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, admin, id), service.ErrForbidden)
	assert.NoError(t, svc.Delete(ctx, owner, id))
}

func TestStaffService_UpdateCommission(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()
	resp, err := svc.Create(ctx, admin, dto.CreateStaffRequest{Name: "Vale", Role: model.RoleStaff, PIN: "4821"})
	require.NoError(t, err)
	id := mustUUID(t, resp.ID)

	bad := dec("101")
	_, err = svc.Update(ctx, admin, id, dto.UpdateStaffRequest{CommissionPct: &bad})
	assert.ErrorIs(t, err, service.ErrValidation)

	good := dec("40")
	updated, err := svc.Update(ctx, admin, id, dto.UpdateStaffRequest{CommissionPct: &good})
	require.NoError(t, err)
	assertDec(t, "40", updated.CommissionPct)
}

func TestStaffService_AdminCannotModifyOwner(t *testing.T) {
	svc, repo := newStaffService()
	ctx := context.Background()
	resp, err := svc.Create(ctx, owner, dto.CreateStaffRequest{Name: "Boss", Role: model.RoleOwner, CommissionPct: dec("10"), PIN: "4821"})
	require.NoError(t, err)
	id := mustUUID(t, resp.ID)

	pin, pct := "9999", dec("50")
	_, err = svc.Update(ctx, admin, id, dto.UpdateStaffRequest{PIN: &pin})
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = svc.Update(ctx, admin, id, dto.UpdateStaffRequest{CommissionPct: &pct})
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.ErrorIs(t, svc.SetActive(ctx, admin, id, false), service.ErrForbidden)

	stored := repo.rows[id]
	require.NotNil(t, stored)
	assert.True(t, stored.Active)
	assertDec(t, "10", stored.CommissionPct)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PinHash), []byte("4821")))

	updated, err := svc.Update(ctx, owner, id, dto.UpdateStaffRequest{CommissionPct: &pct})
	require.NoError(t, err)
	assertDec(t, "50", updated.CommissionPct)
	assert.NoError(t, svc.SetActive(ctx, owner, id, false))
}

func TestStaffService_AdminCannotGrantOwner(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()
	resp, err := svc.Create(ctx, admin, dto.CreateStaffRequest{Name: "Meli", Role: model.RoleStaff, PIN: "4821"})
	require.NoError(t, err)

	promote := model.RoleOwner
	_, err = svc.Update(ctx, admin, mustUUID(t, resp.ID), dto.UpdateStaffRequest{Role: &promote})
	assert.ErrorIs(t, err, service.ErrValidation)
}
