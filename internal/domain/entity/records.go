package entity

import "slices"

// State is a top-level geographic area.
type State struct {
	Base `mapstructure:",squash"`

	Name string `mapstructure:"name"`
}

// NewState creates a State with a fresh identity.
func NewState(name string) *State {
	return &State{Base: NewBase(), Name: name}
}

func (*State) Class() Class { return ClassState }

func (s *State) Fields() map[string]any {
	return map[string]any{"name": s.Name}
}

// City belongs to a State through StateID.
type City struct {
	Base `mapstructure:",squash"`

	Name    string `mapstructure:"name"`
	StateID string `mapstructure:"state_id"`
}

// NewCity creates a City with a fresh identity.
func NewCity(stateID, name string) *City {
	return &City{Base: NewBase(), Name: name, StateID: stateID}
}

func (*City) Class() Class { return ClassCity }

func (c *City) Fields() map[string]any {
	return map[string]any{
		"name":     c.Name,
		"state_id": c.StateID,
	}
}

// Amenity is a feature a Place can offer.
type Amenity struct {
	Base `mapstructure:",squash"`

	Name string `mapstructure:"name"`
}

// NewAmenity creates an Amenity with a fresh identity.
func NewAmenity(name string) *Amenity {
	return &Amenity{Base: NewBase(), Name: name}
}

func (*Amenity) Class() Class { return ClassAmenity }

func (a *Amenity) Fields() map[string]any {
	return map[string]any{"name": a.Name}
}

// User is an account that can own places and write reviews.
// Password holds whatever the request layer stored, normally a bcrypt hash.
type User struct {
	Base `mapstructure:",squash"`

	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
}

// NewUser creates a User with a fresh identity.
func NewUser(email, password string) *User {
	return &User{Base: NewBase(), Email: email, Password: password}
}

func (*User) Class() Class { return ClassUser }

func (u *User) Fields() map[string]any {
	return map[string]any{
		"email":      u.Email,
		"password":   u.Password,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}

// Place is a rentable property located in a City and owned by a User.
type Place struct {
	Base `mapstructure:",squash"`

	CityID          string   `mapstructure:"city_id"`
	UserID          string   `mapstructure:"user_id"`
	Name            string   `mapstructure:"name"`
	Description     string   `mapstructure:"description"`
	NumberRooms     int      `mapstructure:"number_rooms"`
	NumberBathrooms int      `mapstructure:"number_bathrooms"`
	MaxGuest        int      `mapstructure:"max_guest"`
	PricePerNight   int      `mapstructure:"price_per_night"`
	Latitude        float64  `mapstructure:"latitude"`
	Longitude       float64  `mapstructure:"longitude"`
	AmenityIDs      []string `mapstructure:"amenity_ids"`
}

// NewPlace creates a Place with a fresh identity.
func NewPlace(cityID, userID, name string) *Place {
	return &Place{
		Base:       NewBase(),
		CityID:     cityID,
		UserID:     userID,
		Name:       name,
		AmenityIDs: []string{},
	}
}

func (*Place) Class() Class { return ClassPlace }

func (p *Place) Fields() map[string]any {
	amenityIDs := slices.Clone(p.AmenityIDs)
	if amenityIDs == nil {
		amenityIDs = []string{}
	}

	return map[string]any{
		"city_id":          p.CityID,
		"user_id":          p.UserID,
		"name":             p.Name,
		"description":      p.Description,
		"number_rooms":     p.NumberRooms,
		"number_bathrooms": p.NumberBathrooms,
		"max_guest":        p.MaxGuest,
		"price_per_night":  p.PricePerNight,
		"latitude":         p.Latitude,
		"longitude":        p.Longitude,
		"amenity_ids":      amenityIDs,
	}
}

// HasAmenity reports whether amenityID is linked to the place.
func (p *Place) HasAmenity(amenityID string) bool {
	for _, id := range p.AmenityIDs {
		if id == amenityID {
			return true
		}
	}

	return false
}

// LinkAmenity adds amenityID to the set. It returns false if it was already present.
func (p *Place) LinkAmenity(amenityID string) bool {
	if p.HasAmenity(amenityID) {
		return false
	}
	p.AmenityIDs = append(p.AmenityIDs, amenityID)

	return true
}

// UnlinkAmenity removes amenityID from the set. It returns false if it was absent.
func (p *Place) UnlinkAmenity(amenityID string) bool {
	for i, id := range p.AmenityIDs {
		if id == amenityID {
			p.AmenityIDs = append(p.AmenityIDs[:i:i], p.AmenityIDs[i+1:]...)

			return true
		}
	}

	return false
}

// Review is a User's text about a Place.
type Review struct {
	Base `mapstructure:",squash"`

	PlaceID string `mapstructure:"place_id"`
	UserID  string `mapstructure:"user_id"`
	Text    string `mapstructure:"text"`
}

// NewReview creates a Review with a fresh identity.
func NewReview(placeID, userID, text string) *Review {
	return &Review{Base: NewBase(), PlaceID: placeID, UserID: userID, Text: text}
}

func (*Review) Class() Class { return ClassReview }

func (r *Review) Fields() map[string]any {
	return map[string]any{
		"place_id": r.PlaceID,
		"user_id":  r.UserID,
		"text":     r.Text,
	}
}
