package model

// PersonalTrainer is a top-level document in the "personal-trainers"
// collection, with contacts and addresses in sub-collections.
type PersonalTrainer struct {
	Metadata
	Name                string     `json:"name,omitempty" firestore:"name,omitempty" validate:"max=200"`
	Instagram           string     `json:"instagram,omitempty" firestore:"instagram,omitempty" validate:"max=400"`
	Biography           string     `json:"biography,omitempty" firestore:"biography,omitempty" validate:"max=2000"`
	GalleryPicturesURLs []string   `json:"gallery_pictures_urls,omitempty" firestore:"gallery_pictures_urls,omitempty" validate:"dive,notblank"`
	Sports              []string   `json:"sports,omitempty" firestore:"sports,omitempty" validate:"dive,notblank"`
	Focus               []string   `json:"focus,omitempty" firestore:"focus,omitempty" validate:"dive,notblank"`
	Contacts            []*Contact `json:"contacts,omitempty" firestore:"-" validate:"dive,required"`
	Addresses           []*Address `json:"addresses,omitempty" firestore:"-" validate:"dive,required"`
}

func (p *PersonalTrainer) FieldsToUpdate() map[string]any {
	return map[string]any{
		"name":      p.Name,
		"instagram": p.Instagram,
		"biography": p.Biography,
		"focus":     p.Focus,
	}
}

func (p *PersonalTrainer) AddSports(sports []string) {
	p.Sports = appendStrings(p.Sports, sports)
}

func (p *PersonalTrainer) AddGalleryPictures(urls []string) {
	p.GalleryPicturesURLs = appendStrings(p.GalleryPicturesURLs, urls)
}

func (p *PersonalTrainer) AddContacts(contacts []*Contact) {
	p.Contacts = append(p.Contacts, contacts...)
}

func (p *PersonalTrainer) AddAddresses(addresses []*Address) {
	p.Addresses = append(p.Addresses, addresses...)
}

func (p *PersonalTrainer) GetSports() []string              { return p.Sports }
func (p *PersonalTrainer) GetGalleryPicturesURLs() []string { return p.GalleryPicturesURLs }

func (p *PersonalTrainer) DetachChildren() ([]*Contact, []*Address) {
	contacts, addresses := p.Contacts, p.Addresses
	p.Contacts, p.Addresses = nil, nil
	return contacts, addresses
}
