package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/utils/identity"
)

func TestIdentityUpsertFirstContactIsGuest(t *testing.T) {
	db := newTestDB(t, &model.User{})
	service := NewIdentityService(db, nil, "ops@tutorslink.app")

	user, err := service.Upsert(context.Background(), &identity.Claims{
		Subject: "uid-1",
		Email:   "Alex@Example.com",
		Name:    "Alex",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleGuest, user.Role)
	assert.Equal(t, "alex@example.com", user.Email, "stored email is lower-cased")
	assert.Equal(t, "Alex", user.DisplayName)
	assert.NotZero(t, user.ID)
}

func TestIdentityUpsertOperatorEmailIsAdmin(t *testing.T) {
	db := newTestDB(t, &model.User{})
	service := NewIdentityService(db, nil, "Ops@TutorsLink.app")

	user, err := service.Upsert(context.Background(), &identity.Claims{
		Subject: "uid-ops",
		Email:   "OPS@tutorslink.APP",
		Name:    "Operator",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role, "operator match ignores case")
}

func TestIdentityUpsertRefreshesWithoutDowngrade(t *testing.T) {
	db := newTestDB(t, &model.User{})
	service := NewIdentityService(db, nil, "")

	require.NoError(t, db.Create(&model.User{
		FirebaseUID: "uid-2",
		Email:       "tutor@example.com",
		DisplayName: "Old Name",
		Role:        model.RoleTutor,
	}).Error)

	user, err := service.Upsert(context.Background(), &identity.Claims{
		Subject: "uid-2",
		Email:   "renamed@example.com",
		Name:    "New Name",
	})
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.Where("firebase_uid = ?", "uid-2").First(&stored).Error)
	assert.Equal(t, "renamed@example.com", stored.Email)
	assert.Equal(t, "New Name", stored.DisplayName)
	assert.Equal(t, model.RoleTutor, stored.Role, "re-contact never touches the role")
	assert.Equal(t, model.RoleTutor, user.Role)
}

func TestIdentityUpsertRepeatContactCreatesNoDuplicate(t *testing.T) {
	db := newTestDB(t, &model.User{})
	service := NewIdentityService(db, nil, "")

	claims := &identity.Claims{Subject: "uid-3", Email: "s@example.com", Name: "S"}
	first, err := service.Upsert(context.Background(), claims)
	require.NoError(t, err)
	second, err := service.Upsert(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestIdentityResolveWithoutVerifier(t *testing.T) {
	db := newTestDB(t, &model.User{})
	service := NewIdentityService(db, nil, "")

	_, err := service.Resolve(context.Background(), "any-token")
	assert.ErrorIs(t, err, identity.ErrNoVerifier)
}
