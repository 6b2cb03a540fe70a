package model

// Gym is a top-level document in the "gyms" collection. Contacts and
// addresses live in sub-collections and are only filled on reads.
type Gym struct {
	Metadata
	Instagram           string     `json:"instagram,omitempty" firestore:"instagram,omitempty" validate:"max=400"`
	Biography           string     `json:"biography,omitempty" firestore:"biography,omitempty" validate:"max=2000"`
	GalleryPicturesURLs []string   `json:"gallery_pictures_urls,omitempty" firestore:"gallery_pictures_urls,omitempty" validate:"dive,notblank"`
	Sports              []string   `json:"sports,omitempty" firestore:"sports,omitempty" validate:"dive,notblank"`
	Contacts            []*Contact `json:"contacts,omitempty" firestore:"-" validate:"dive,required"`
	Addresses           []*Address `json:"addresses,omitempty" firestore:"-" validate:"dive,required"`
}

// FieldsToUpdate lists the fields a gym update may overwrite.
func (g *Gym) FieldsToUpdate() map[string]any {
	return map[string]any{
		"instagram": g.Instagram,
		"biography": g.Biography,
	}
}

// AddSports appends sports, keeping the ones already present.
func (g *Gym) AddSports(sports []string) {
	g.Sports = appendStrings(g.Sports, sports)
}

// AddGalleryPictures appends picture URLs to the gallery.
func (g *Gym) AddGalleryPictures(urls []string) {
	g.GalleryPicturesURLs = appendStrings(g.GalleryPicturesURLs, urls)
}

func (g *Gym) AddContacts(contacts []*Contact) {
	g.Contacts = append(g.Contacts, contacts...)
}

func (g *Gym) AddAddresses(addresses []*Address) {
	g.Addresses = append(g.Addresses, addresses...)
}

func (g *Gym) GetSports() []string              { return g.Sports }
func (g *Gym) GetGalleryPicturesURLs() []string { return g.GalleryPicturesURLs }

// DetachChildren returns the nested contacts and addresses and clears them,
// leaving only the fields stored on the gym document itself.
func (g *Gym) DetachChildren() ([]*Contact, []*Address) {
	contacts, addresses := g.Contacts, g.Addresses
	g.Contacts, g.Addresses = nil, nil
	return contacts, addresses
}
