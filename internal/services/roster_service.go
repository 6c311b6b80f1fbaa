package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/excellence-hub/excellence/internal/models"
)

// RosterService serves the selectable names per account type. The login
// workflow never consults it.
type RosterService struct {
	repo   RosterRepository
	strict bool
	logger *slog.Logger
}

// NewRosterService creates a new RosterService
func NewRosterService(repo RosterRepository, strict bool, logger *slog.Logger) *RosterService {
	return &RosterService{repo: repo, strict: strict, logger: logger}
}

func (s *RosterService) degrade(what string, err error) error {
	if err == nil {
		return nil
	}
	s.logger.Error("failed to read roster, using defaults",
		slog.String("list", what),
		slog.Any("error", err))
	if s.strict {
		return err
	}
	return nil
}

// Names lists the names selectable for the given type. For MHS users a
// non-empty subRole selects holders of the "other" role with that sub-role,
// otherwise a non-empty role filters by role.
func (s *RosterService) Names(ctx context.Context, accountType models.AccountType, role, subRole string) ([]string, error) {
	switch accountType {
	case models.AccountTypeStudent:
		names, err := s.repo.Students(ctx)
		if err := s.degrade("students", err); err != nil {
			return nil, err
		}
		return sortedCopy(names), nil

	case models.AccountTypeMaster:
		names, err := s.repo.Masters(ctx)
		if err := s.degrade("masters", err); err != nil {
			return nil, err
		}
		return sortedCopy(names), nil

	case models.AccountTypeMHS:
		users, err := s.repo.MHSUsers(ctx)
		if err := s.degrade("mhs users", err); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(users))
		for _, u := range users {
			switch {
			case subRole != "":
				if u.Role != models.RoleOther || u.SubRole != subRole {
					continue
				}
			case role != "":
				if u.Role != role {
					continue
				}
			}
			names = append(names, u.Name)
		}
		return names, nil
	}
	return nil, fmt.Errorf("%w: unknown account type %q", models.ErrInvalidInput, accountType)
}

// MHSUsers returns the organisation role table.
func (s *RosterService) MHSUsers(ctx context.Context) ([]models.MHSUser, error) {
	users, err := s.repo.MHSUsers(ctx)
	if err := s.degrade("mhs users", err); err != nil {
		return nil, err
	}
	return append([]models.MHSUser(nil), users...), nil
}

// ReplaceNames replaces the stored list for a student or master roster.
func (s *RosterService) ReplaceNames(ctx context.Context, accountType models.AccountType, names []string) error {
	switch accountType {
	case models.AccountTypeStudent:
		return s.repo.SetStudents(ctx, names)
	case models.AccountTypeMaster:
		return s.repo.SetMasters(ctx, names)
	}
	return fmt.Errorf("%w: %q rosters are replaced with ReplaceMHSUsers", models.ErrInvalidInput, accountType)
}

// ReplaceMHSUsers replaces the organisation role table.
func (s *RosterService) ReplaceMHSUsers(ctx context.Context, users []models.MHSUser) error {
	for _, u := range users {
		if u.Name == "" || u.Role == "" {
			return fmt.Errorf("%w: every MHS user needs a name and a role", models.ErrInvalidInput)
		}
	}
	return s.repo.SetMHSUsers(ctx, users)
}

func sortedCopy(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}
