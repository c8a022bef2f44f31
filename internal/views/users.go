package views

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/google/uuid"
)

// NewUser is the minimal form for adding a project user.
type NewUser struct {
	Email string
	Name  string
	Phone string
}

// UserEdit carries the submitted subset of editable fields.
type UserEdit struct {
	Email    *string
	Name     *string
	Phone    *string
	IsActive *bool
}

// UsersView lists project users and edits them in place.
type UsersView struct {
	backend backend.Backend
	opts    options
	list    *collection[models.ProjectUser]
}

func NewUsersView(b backend.Backend, opts ...Option) *UsersView {
	return &UsersView{
		backend: b,
		opts:    buildOptions(opts),
		list: newCollection(func(u *models.ProjectUser) []string {
			phone := ""
			if u.Phone != nil {
				phone = *u.Phone
			}
			return []string{u.Name, u.Email, phone}
		}),
	}
}

// Load re-fetches every user. On failure the list becomes empty and the
// error is logged and returned.
func (v *UsersView) Load(ctx context.Context) error {
	gen := v.list.begin()
	users, err := v.backend.ListProjectUsers(ctx)
	if err != nil {
		v.opts.logger.Error("failed to load project users", "error", err)
		users = nil
	}
	v.list.finish(ctx, gen, users)
	return err
}

func (v *UsersView) SetFilter(q string) { v.list.setQuery(q) }
func (v *UsersView) Filter() string     { return v.list.Query() }
func (v *UsersView) Loading() bool      { return v.list.isLoading() }

// Users returns the rows that pass the current filter.
func (v *UsersView) Users() []models.ProjectUser { return v.list.visible() }

// All returns every loaded row regardless of the filter.
func (v *UsersView) All() []models.ProjectUser { return v.list.all() }

func (v *UsersView) Get(id uuid.UUID) (models.ProjectUser, bool) {
	return v.list.find(func(u *models.ProjectUser) bool { return u.ID == id })
}

// ToggleActive flips the active flag of a loaded user and re-fetches.
func (v *UsersView) ToggleActive(ctx context.Context, id uuid.UUID) error {
	user, ok := v.Get(id)
	if !ok {
		return ErrNotLoaded
	}

	active := !user.IsActive
	patch := models.ProjectUserPatch{
		IsActive:  &active,
		UpdatedAt: v.opts.stamp(user.UpdatedAt),
	}
	if err := v.backend.UpdateProjectUser(ctx, id, patch); err != nil {
		v.opts.logger.Error("failed to toggle project user", "user_id", id.String(), "error", err)
		return err
	}

	action := ActionUserDeactivated
	if active {
		action = ActionUserActivated
	}
	v.opts.recorder.Record(ctx, auditEntry(action, entityProjectUser, id.String(), map[string]interface{}{
		"is_active": active,
	}))

	_ = v.Load(ctx)
	return nil
}

// Edit replaces the submitted fields of a loaded user and re-fetches.
func (v *UsersView) Edit(ctx context.Context, id uuid.UUID, edit UserEdit) error {
	user, ok := v.Get(id)
	if !ok {
		return ErrNotLoaded
	}

	patch := models.ProjectUserPatch{IsActive: edit.IsActive}
	changed := map[string]interface{}{}
	if edit.Email != nil {
		email := strings.TrimSpace(*edit.Email)
		if email == "" {
			return ErrEmailRequired
		}
		patch.Email = &email
		changed["email"] = email
	}
	if edit.Name != nil {
		name := strings.TrimSpace(*edit.Name)
		if name == "" {
			return ErrNameRequired
		}
		patch.Name = &name
		changed["name"] = name
	}
	if edit.Phone != nil {
		phone := strings.TrimSpace(*edit.Phone)
		patch.Phone = &phone
		changed["phone"] = phone
	}
	if edit.IsActive != nil {
		changed["is_active"] = *edit.IsActive
	}
	patch.UpdatedAt = v.opts.stamp(user.UpdatedAt)

	if err := v.backend.UpdateProjectUser(ctx, id, patch); err != nil {
		v.opts.logger.Error("failed to update project user", "user_id", id.String(), "error", err)
		return err
	}
	v.opts.recorder.Record(ctx, auditEntry(ActionUserUpdated, entityProjectUser, id.String(), changed))

	_ = v.Load(ctx)
	return nil
}

// Create inserts a new active user and re-fetches. The identity comes from
// the backend.
func (v *UsersView) Create(ctx context.Context, in NewUser) (*models.ProjectUser, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	now := v.opts.now().UTC()
	user := &models.ProjectUser{
		Email:     email,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		user.Phone = &phone
	}

	if err := v.backend.InsertProjectUser(ctx, user); err != nil {
		v.opts.logger.Error("failed to create project user", "email", email, "error", err)
		return nil, err
	}
	v.opts.recorder.Record(ctx, auditEntry(ActionUserCreated, entityProjectUser, user.ID.String(), map[string]interface{}{
		"email": email,
		"name":  name,
	}))

	_ = v.Load(ctx)
	return user, nil
}
