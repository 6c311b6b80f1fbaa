package services

import (
	"context"
	"testing"

	"github.com/excellence-hub/excellence/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterService_Names(t *testing.T) {
	repo := &MockRosterRepository{
		StudentsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Zaid", "Amal"}, nil
		},
		MHSUsersFunc: func(ctx context.Context) ([]models.MHSUser, error) {
			return []models.MHSUser{
				{Name: "A", Role: "president"},
				{Name: "B", Role: models.RoleOther, SubRole: "library"},
				{Name: "C", Role: models.RoleOther, SubRole: "sports"},
			}, nil
		},
	}
	svc := NewRosterService(repo, false, newTestLogger())
	ctx := context.Background()

	tests := []struct {
		name    string
		typ     models.AccountType
		role    string
		subRole string
		want    []string
	}{
		{"students sorted", models.AccountTypeStudent, "", "", []string{"Amal", "Zaid"}},
		{"mhs all", models.AccountTypeMHS, "", "", []string{"A", "B", "C"}},
		{"mhs by role", models.AccountTypeMHS, "president", "", []string{"A"}},
		{"mhs by sub-role", models.AccountTypeMHS, "", "library", []string{"B"}},
		{"mhs unknown role", models.AccountTypeMHS, "treasurer", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, err := svc.Names(ctx, tt.typ, tt.role, tt.subRole)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names)
		})
	}

	_, err := svc.Names(ctx, "alien", "", "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestRosterService_Names_FaultPolicy(t *testing.T) {
	repo := &MockRosterRepository{
		MastersFunc: func(ctx context.Context) ([]string, error) {
			return models.DefaultMasters, models.ErrStorage
		},
	}

	lenient := NewRosterService(repo, false, newTestLogger())
	names, err := lenient.Names(context.Background(), models.AccountTypeMaster, "", "")
	require.NoError(t, err)
	assert.Len(t, names, len(models.DefaultMasters))

	strict := NewRosterService(repo, true, newTestLogger())
	_, err = strict.Names(context.Background(), models.AccountTypeMaster, "", "")
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestRosterService_ReplaceMHSUsers_Validates(t *testing.T) {
	called := false
	repo := &MockRosterRepository{
		SetMHSUsersFunc: func(ctx context.Context, users []models.MHSUser) error {
			called = true
			return nil
		},
	}
	svc := NewRosterService(repo, false, newTestLogger())

	err := svc.ReplaceMHSUsers(context.Background(), []models.MHSUser{{Name: "A"}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.False(t, called)

	require.NoError(t, svc.ReplaceMHSUsers(context.Background(), []models.MHSUser{{Name: "A", Role: "president"}}))
	assert.True(t, called)
}

func TestRosterService_ReplaceNames(t *testing.T) {
	var students []string
	repo := &MockRosterRepository{
		SetStudentsFunc: func(ctx context.Context, names []string) error {
			students = names
			return nil
		},
	}
	svc := NewRosterService(repo, false, newTestLogger())

	require.NoError(t, svc.ReplaceNames(context.Background(), models.AccountTypeStudent, []string{"Amal"}))
	assert.Equal(t, []string{"Amal"}, students)

	err := svc.ReplaceNames(context.Background(), models.AccountTypeMHS, nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
