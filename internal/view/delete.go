package view

import (
	"context"
	"fmt"
)

type DeletePage struct {
	Heading    string
	Question   string
	ID         string
	ActionHref string
	CancelHref string

	Updating     bool
	ErrorMessage string
}

// DeleteView asks for confirmation before removing a record.
type DeleteView struct {
	store     Store
	paths     Paths
	id        string
	activated bool
	err       error
}

func NewDeleteView(s Store, p Paths, id string) *DeleteView {
	return &DeleteView{store: s, paths: p, id: id}
}

func (v *DeleteView) Activate(ctx context.Context) {
	if v.activated {
		return
	}
	v.activated = true
	v.store.FetchOne(ctx, v.id)
}

// Confirm deletes the record and reports whether it succeeded.
func (v *DeleteView) Confirm(ctx context.Context) bool {
	v.activated = true
	st := v.store.Delete(ctx, v.id)
	if !st.UpdateSuccess {
		v.err = st.Err
	}
	return st.UpdateSuccess
}

// Err is the remote failure of the last Confirm.
func (v *DeleteView) Err() error { return v.err }

func (v *DeleteView) DoneHref() string { return v.paths.List() }

func (v *DeleteView) Page() DeletePage {
	st := v.store.Snapshot()
	page := DeletePage{
		Heading:      "Confirm delete operation",
		Question:     fmt.Sprintf("Are you sure you want to delete User Extra %s?", v.id),
		ID:           v.id,
		ActionHref:   v.paths.Delete(v.id),
		CancelHref:   v.paths.List(),
		Updating:     st.Updating,
		ErrorMessage: st.ErrorMessage,
	}
	if v.err != nil {
		page.ErrorMessage = v.err.Error()
	}
	return page
}
