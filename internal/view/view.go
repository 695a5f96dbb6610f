// Package view turns store state into page models for the user extra screens.
//
// A view is created per navigation. Activate issues the view's fetch the
// first time it is called and is a no-op afterwards; Page reads whatever the
// store holds at that moment.
package view

import (
	"context"
	"net/url"

	"userextra/internal/model"
	"userextra/internal/store"
)

// Store is the part of *store.Store the views depend on.
type Store interface {
	FetchList(ctx context.Context, query url.Values) store.State
	FetchOne(ctx context.Context, id string) store.State
	Create(ctx context.Context, e *model.UserExtra) store.State
	Update(ctx context.Context, e *model.UserExtra) store.State
	Delete(ctx context.Context, id string) store.State
	Snapshot() store.State
}

// Paths builds the links between screens.
type Paths struct {
	// Base is the list path, e.g. "/user-extra".
	Base string
	// API is the REST collection path used for image links.
	API string
}

// DefaultPaths matches the routes registered by package web and the REST API.
var DefaultPaths = Paths{Base: "/user-extra", API: "/api/user-extras"}

func (p Paths) List() string { return p.Base }

func (p Paths) New() string { return p.Base + "/new" }

func (p Paths) Detail(id string) string { return p.Base + "/" + url.PathEscape(id) }

func (p Paths) Edit(id string) string { return p.Detail(id) + "/edit" }

func (p Paths) Delete(id string) string { return p.Detail(id) + "/delete" }

// Refresh keeps the list query so a refresh repeats the mount fetch.
func (p Paths) Refresh(query url.Values) string {
	if len(query) == 0 {
		return p.Base + "/refresh"
	}
	return p.Base + "/refresh?" + query.Encode()
}

// Image links an image side through the API redirect endpoint.
func (p Paths) Image(id, side string) string {
	return p.API + "/" + url.PathEscape(id) + "/images/" + side
}
