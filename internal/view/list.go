package view

import (
	"context"
	"net/url"

	"userextra/internal/model"
)

// Row is one record in the list table.
type Row struct {
	ID         string
	FrontImage string
	BackImage  string
	UserID     string

	ViewHref   string
	EditHref   string
	DeleteHref string
}

type ListPage struct {
	Heading     string
	CreateHref  string
	RefreshHref string
	// RefreshDisabled is set while any fetch is in flight.
	RefreshDisabled bool
	Loading         bool

	Rows         []Row
	ShowTable    bool
	ShowNotFound bool

	ErrorMessage string
}

type ListView struct {
	store     Store
	paths     Paths
	query     url.Values
	activated bool
}

// NewListView returns a list view that fetches with query on activation.
func NewListView(s Store, p Paths, query url.Values) *ListView {
	if query == nil {
		query = url.Values{}
	}
	return &ListView{store: s, paths: p, query: query}
}

// Activate fetches the list once per view.
func (v *ListView) Activate(ctx context.Context) {
	if v.activated {
		return
	}
	v.activated = true
	v.store.FetchList(ctx, v.query)
}

// Refresh fetches the list again with the activation query.
func (v *ListView) Refresh(ctx context.Context) {
	v.activated = true
	v.store.FetchList(ctx, v.query)
}

func (v *ListView) Page() ListPage {
	st := v.store.Snapshot()

	page := ListPage{
		Heading:         "User Extras",
		CreateHref:      v.paths.New(),
		RefreshHref:     v.paths.Refresh(v.query),
		RefreshDisabled: st.Loading,
		Loading:         st.Loading,
		ErrorMessage:    st.ErrorMessage,
	}
	for _, e := range st.Entities {
		if e.ID == nil {
			continue
		}
		page.Rows = append(page.Rows, v.row(e))
	}
	page.ShowTable = len(page.Rows) > 0
	page.ShowNotFound = !page.ShowTable && !st.Loading
	return page
}

func (v *ListView) row(e model.UserExtra) Row {
	id := e.IDString()
	return Row{
		ID:         id,
		FrontImage: model.Deref(e.FrontImage),
		BackImage:  model.Deref(e.BackImage),
		UserID:     e.UserIDString(),
		ViewHref:   v.paths.Detail(id),
		EditHref:   v.paths.Edit(id),
		DeleteHref: v.paths.Delete(id),
	}
}
