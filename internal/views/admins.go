package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
)

// AdminsView lists operator accounts. Accounts can be renamed, re-roled and
// (de)activated but never created or removed here.
type AdminsView struct {
	backend backend.Backend
	opts    options
	list    *collection[models.AdminUser]
}

func NewAdminsView(b backend.Backend, opts ...Option) *AdminsView {
	return &AdminsView{
		backend: b,
		opts:    buildOptions(opts),
		list: newCollection(func(a *models.AdminUser) []string {
			return []string{a.Name, a.Email}
		}),
	}
}

func (v *AdminsView) Load(ctx context.Context) error {
	gen := v.list.begin()
	admins, err := v.backend.ListAdminUsers(ctx)
	if err != nil {
		v.opts.logger.Error("failed to load admin users", "error", err)
		admins = nil
	}
	v.list.finish(ctx, gen, admins)
	return err
}

func (v *AdminsView) SetFilter(q string)         { v.list.setQuery(q) }
func (v *AdminsView) Loading() bool              { return v.list.isLoading() }
func (v *AdminsView) Admins() []models.AdminUser { return v.list.visible() }

// Update applies patch to a loaded admin and re-fetches.
func (v *AdminsView) Update(ctx context.Context, id uuid.UUID, patch models.AdminUserPatch) error {
	if _, ok := v.list.find(func(a *models.AdminUser) bool { return a.ID == id }); !ok {
		return ErrNotLoaded
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, *patch.Role)
	}

	changed := map[string]interface{}{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ErrNameRequired
		}
		patch.Name = &name
		changed["name"] = name
	}
	if patch.Role != nil {
		changed["role"] = string(*patch.Role)
	}
	if patch.IsActive != nil {
		changed["is_active"] = *patch.IsActive
	}
	if patch.Empty() {
		return nil
	}

	if err := v.backend.UpdateAdminUser(ctx, id, patch); err != nil {
		v.opts.logger.Error("failed to update admin user", "admin_id", id.String(), "error", err)
		return err
	}
	v.opts.recorder.Record(ctx, auditEntry(ActionAdminUpdated, entityAdminUser, id.String(), changed))

	_ = v.Load(ctx)
	return nil
}
