package model

// Contact belongs to the "contacts" sub-collection of a gym or personal trainer.
type Contact struct {
	Metadata
	Name          string `json:"name,omitempty" firestore:"name" validate:"required,notblank,max=200"`
	Email         string `json:"email,omitempty" firestore:"email,omitempty" validate:"omitempty,email,max=320"`
	Phone         string `json:"phone,omitempty" firestore:"phone,omitempty" validate:"max=40"`
	IsMainContact bool   `json:"is_main_contact,omitempty" firestore:"is_main_contact"`
}

func (c *Contact) FieldsToUpdate() map[string]any {
	return map[string]any{
		"name":            c.Name,
		"email":           c.Email,
		"phone":           c.Phone,
		"is_main_contact": c.IsMainContact,
	}
}
