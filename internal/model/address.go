package model

// Address belongs to the "addresses" sub-collection of a gym or personal trainer.
type Address struct {
	Metadata
	ZipCode     string `json:"zip_code,omitempty" firestore:"zip_code" validate:"required,notblank,max=20"`
	PublicPlace string `json:"public_place,omitempty" firestore:"public_place" validate:"required,notblank,max=400"`
	Complement  string `json:"complement,omitempty" firestore:"complement,omitempty" validate:"max=400"`
	District    string `json:"district,omitempty" firestore:"district" validate:"required,notblank,max=200"`
	City        string `json:"city,omitempty" firestore:"city" validate:"required,notblank,max=200"`
	FederalUnit string `json:"federal_unit,omitempty" firestore:"federal_unit" validate:"required,notblank,max=100"`
}

func (a *Address) FieldsToUpdate() map[string]any {
	return map[string]any{
		"zip_code":     a.ZipCode,
		"public_place": a.PublicPlace,
		"complement":   a.Complement,
		"district":     a.District,
		"city":         a.City,
		"federal_unit": a.FederalUnit,
	}
}
