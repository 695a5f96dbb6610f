package view

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"userextra/internal/model"
	"userextra/internal/store"
)

// Form carries the editable fields as submitted by the user.
type Form struct {
	FrontImage string
	BackImage  string
	UserID     string
}

var ErrInvalidUserID = errors.New("user id must be a positive integer")

// Record converts the form into a record for id; empty fields become null.
func (f Form) Record(id string) (*model.UserExtra, error) {
	e := &model.UserExtra{}
	if id != "" {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, err
		}
		e.ID = model.Int64(n)
	}
	if s := strings.TrimSpace(f.FrontImage); s != "" {
		e.FrontImage = model.String(s)
	}
	if s := strings.TrimSpace(f.BackImage); s != "" {
		e.BackImage = model.String(s)
	}
	if s := strings.TrimSpace(f.UserID); s != "" {
		uid, err := strconv.ParseInt(s, 10, 64)
		if err != nil || uid <= 0 {
			return nil, ErrInvalidUserID
		}
		e.User = &model.UserRef{ID: uid}
	}
	return e, nil
}

func formOf(e model.UserExtra) Form {
	return Form{
		FrontImage: model.Deref(e.FrontImage),
		BackImage:  model.Deref(e.BackImage),
		UserID:     e.UserIDString(),
	}
}

type UpdatePage struct {
	Heading    string
	IsNew      bool
	ID         string
	Form       Form
	ActionHref string
	CancelHref string

	Loading      bool
	Updating     bool
	ErrorMessage string
}

// UpdateView serves both the create screen (empty id) and the edit screen.
type UpdateView struct {
	store     Store
	paths     Paths
	id        string
	activated bool

	submitted *Form
	err       error
}

func NewUpdateView(s Store, p Paths, id string) *UpdateView {
	return &UpdateView{store: s, paths: p, id: id}
}

func (v *UpdateView) IsNew() bool { return v.id == "" }

// Activate loads the record being edited; the create screen fetches nothing.
func (v *UpdateView) Activate(ctx context.Context) {
	if v.activated {
		return
	}
	v.activated = true
	if !v.IsNew() {
		v.store.FetchOne(ctx, v.id)
	}
}

// Submit creates or replaces the record and reports whether it was saved.
// On failure the submitted values stay on the page.
func (v *UpdateView) Submit(ctx context.Context, f Form) bool {
	v.activated = true
	v.submitted = &f
	v.err = nil

	e, err := f.Record(v.id)
	if err != nil {
		v.err = err
		return false
	}
	var st store.State
	if v.IsNew() {
		st = v.store.Create(ctx, e)
	} else {
		st = v.store.Update(ctx, e)
	}
	if !st.UpdateSuccess {
		v.err = st.Err
	}
	return st.UpdateSuccess
}

// Err is why the last Submit failed: a form error or the remote failure.
func (v *UpdateView) Err() error { return v.err }

// DoneHref is where a successful submit navigates to.
func (v *UpdateView) DoneHref() string { return v.paths.List() }

func (v *UpdateView) Page() UpdatePage {
	st := v.store.Snapshot()

	page := UpdatePage{
		Heading:      "Create or edit a User Extra",
		IsNew:        v.IsNew(),
		ID:           v.id,
		ActionHref:   v.paths.New(),
		CancelHref:   v.paths.List(),
		Loading:      st.Loading,
		Updating:     st.Updating,
		ErrorMessage: st.ErrorMessage,
	}
	if !v.IsNew() {
		page.ActionHref = v.paths.Edit(v.id)
	}

	switch {
	case v.submitted != nil:
		page.Form = *v.submitted
	case !v.IsNew() && st.Entity.IDString() == v.id:
		page.Form = formOf(st.Entity)
	}
	if v.err != nil {
		page.ErrorMessage = v.err.Error()
	}
	return page
}
