package handlers

import (
	"context"
	"net/http"

	"github.com/excellence-hub/excellence/internal/models"
	pkghttp "github.com/excellence-hub/excellence/pkg/http"
)

// RosterProvider lists selectable names.
type RosterProvider interface {
	Names(ctx context.Context, accountType models.AccountType, role, subRole string) ([]string, error)
}

// RosterHandler serves GET /roster.
type RosterHandler struct {
	roster RosterProvider
}

// NewRosterHandler creates a new RosterHandler
func NewRosterHandler(roster RosterProvider) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// RosterResponse lists the names for one account type.
type RosterResponse struct {
	AccountType models.AccountType `json:"account_type"`
	Role        string             `json:"role,omitempty"`
	SubRole     string             `json:"sub_role,omitempty"`
	Names       []string           `json:"names"`
}

// ListNames handles GET /roster?account_type=&role=&sub_role=
func (h *RosterHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accountType, err := models.ParseAccountType(q.Get("account_type"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	role, subRole := q.Get("role"), q.Get("sub_role")

	names, err := h.roster.Names(r.Context(), accountType, role, subRole)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, RosterResponse{
		AccountType: accountType,
		Role:        role,
		SubRole:     subRole,
		Names:       names,
	})
}
