package view

import (
	"context"

	"userextra/internal/model"
)

type DetailPage struct {
	Heading    string
	ID         string
	FrontImage string
	BackImage  string
	UserID     string

	FrontImageHref string
	BackImageHref  string
	BackHref       string
	EditHref       string

	Loading      bool
	Err          error
	ErrorMessage string
}

type DetailView struct {
	store     Store
	paths     Paths
	id        string
	activated bool
}

// NewDetailView returns a detail view for the record id taken from the route.
func NewDetailView(s Store, p Paths, id string) *DetailView {
	return &DetailView{store: s, paths: p, id: id}
}

func (v *DetailView) ID() string { return v.id }

// Activate fetches the record once per view.
func (v *DetailView) Activate(ctx context.Context) {
	if v.activated {
		return
	}
	v.activated = true
	v.store.FetchOne(ctx, v.id)
}

// Page renders the cached record, which after a failed fetch may be an older one.
func (v *DetailView) Page() DetailPage {
	st := v.store.Snapshot()
	e := st.Entity
	id := e.IDString()

	page := DetailPage{
		Heading:      "User Extra",
		ID:           id,
		FrontImage:   model.Deref(e.FrontImage),
		BackImage:    model.Deref(e.BackImage),
		UserID:       e.UserIDString(),
		BackHref:     v.paths.List(),
		EditHref:     v.paths.Edit(id),
		Loading:      st.Loading,
		Err:          st.Err,
		ErrorMessage: st.ErrorMessage,
	}
	if id != "" && page.FrontImage != "" {
		page.FrontImageHref = v.paths.Image(id, "front")
	}
	if id != "" && page.BackImage != "" {
		page.BackImageHref = v.paths.Image(id, "back")
	}
	return page
}
