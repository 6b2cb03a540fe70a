// Package model contains the fitness domain entities.
//
// Every field carries matching json and firestore names so that the JSON
// backends and Firestore store the same document shape. Fields excluded from
// the stored document (ids, nested sub-collections) are tagged firestore:"-"
// and left empty before persisting.
package model

import "time"

// Metadata is embedded by every stored entity.
type Metadata struct {
	ID        string    `json:"id,omitempty" firestore:"-" validate:"omitempty,docid"`
	CreatedAt time.Time `json:"created_at,omitzero" firestore:"created_at" validate:"pastorpresent"`
	UpdatedAt time.Time `json:"updated_at,omitzero" firestore:"updated_at" validate:"pastorpresent"`
}

func (m *Metadata) GetID() string            { return m.ID }
func (m *Metadata) SetID(id string)          { m.ID = id }
func (m *Metadata) SetCreatedAt(t time.Time) { m.CreatedAt = t }
func (m *Metadata) SetUpdatedAt(t time.Time) { m.UpdatedAt = t }

// Field names shared by the fields-to-update maps.
const (
	FieldUpdatedAt           = "updated_at"
	FieldSports              = "sports"
	FieldGalleryPicturesURLs = "gallery_pictures_urls"
)

func appendStrings(dst []string, values []string) []string {
	if dst == nil {
		dst = make([]string, 0, len(values))
	}
	return append(dst, values...)
}
