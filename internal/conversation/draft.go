package conversation

import (
	"errors"

	"github.com/starkeae/divarkhaf-bot/internal/listing/domain"
)

// Draft is the partial listing under construction. Field pointers are nil
// until the corresponding state has validated and stored a value, so "unset"
// and "zero" stay distinguishable. A Draft belongs to exactly one session and
// is only ever written by the active state's handler.
type Draft struct {
	Category    domain.Category
	Title       *string
	Description *string
	Price       *int64
	Contact     *string
	Location    *string
	Photos      []string // initialized (empty, non-nil) once contact is accepted
}

var errDraftIncomplete = errors.New("draft is missing required fields")

// complete reports whether every required field passed validation.
func (d *Draft) complete() bool {
	return d.Category != "" &&
		d.Title != nil &&
		d.Description != nil &&
		d.Price != nil &&
		d.Contact != nil &&
		d.Location != nil &&
		d.Photos != nil
}

// listing materializes the draft for the owning user. It refuses to build
// from an incomplete draft, so a crafted input sequence cannot commit with a
// skipped field.
func (d *Draft) listing(userID int64) (*domain.Listing, error) {
	if !d.complete() {
		return nil, errDraftIncomplete
	}
	return &domain.Listing{
		UserID:      userID,
		Category:    d.Category,
		Title:       *d.Title,
		Description: *d.Description,
		Price:       *d.Price,
		Contact:     *d.Contact,
		Location:    *d.Location,
		Photos:      d.Photos,
	}, nil
}
