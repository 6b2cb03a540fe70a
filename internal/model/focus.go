package model

// Focus is a training focus from the shared catalogue, e.g. "Yoga".
type Focus struct {
	Metadata
	Name string `json:"name,omitempty" firestore:"name" validate:"required,notblank,max=200"`
}

func (f *Focus) FieldsToUpdate() map[string]any {
	return map[string]any{"name": f.Name}
}
