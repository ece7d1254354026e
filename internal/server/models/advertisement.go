// Package models contains the server-side domain records, request payloads
// and their public JSON representations.
package models

import "time"

// Advertisement is a listing owned by the user referenced by CreatorID.
type Advertisement struct {
	ID          int64
	Title       string
	Description string
	CreatorID   int64
	CreatedAt   time.Time
}

// AdvertisementView is the public representation of an Advertisement.
// Date is an ISO-8601 timestamp.
type AdvertisementView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Creator     int64  `json:"creator"`
	Date        string `json:"date"`
}

func (a *Advertisement) View() AdvertisementView {
	return AdvertisementView{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Creator:     a.CreatorID,
		Date:        a.CreatedAt.Format(time.RFC3339Nano),
	}
}

// AdvertisementInput is the create payload; both fields are required.
type AdvertisementInput struct {
	Title       string `json:"title" validate:"required,max=24"`
	Description string `json:"description" validate:"required,max=64"`
}

// AdvertisementPatch is the partial-update payload. A nil field was absent
// from the request and is left untouched.
type AdvertisementPatch struct {
	Title       *string `json:"title" validate:"omitnil,max=24"`
	Description *string `json:"description" validate:"omitnil,max=64"`
}

// IsEmpty reports whether the patch changes nothing.
func (p AdvertisementPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil
}

// Apply copies the present fields of p onto a.
func (p AdvertisementPatch) Apply(a *Advertisement) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
}
