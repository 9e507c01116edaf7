// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Class names a concrete record variant. It is the discriminator written
// alongside every serialized record and the prefix of every store key.
type Class string

const (
	// ClassState is the discriminator for State records.
	ClassState Class = "State"
	// ClassCity is the discriminator for City records.
	ClassCity Class = "City"
	// ClassAmenity is the discriminator for Amenity records.
	ClassAmenity Class = "Amenity"
	// ClassUser is the discriminator for User records.
	ClassUser Class = "User"
	// ClassPlace is the discriminator for Place records.
	ClassPlace Class = "Place"
	// ClassReview is the discriminator for Review records.
	ClassReview Class = "Review"
)

// String returns the string representation of the Class.
func (c Class) String() string {
	return string(c)
}

// IsValid reports whether the class has a registered constructor.
func (c Class) IsValid() bool {
	_, ok := registry[c]

	return ok
}

// registry maps every discriminator to a constructor of an empty record.
// It is the closed set of variants the storage engines can rebuild.
var registry = map[Class]func() Record{
	ClassState:   func() Record { return &State{} },
	ClassCity:    func() Record { return &City{} },
	ClassAmenity: func() Record { return &Amenity{} },
	ClassUser:    func() Record { return &User{} },
	ClassPlace:   func() Record { return &Place{} },
	ClassReview:  func() Record { return &Review{} },
}

// Register adds or replaces the constructor for class. It is not safe to call
// once engines are running; register from an init function.
func Register(class Class, ctor func() Record) {
	registry[class] = ctor
}

// Lookup returns the constructor registered for class.
func Lookup(class Class) (func() Record, bool) {
	ctor, ok := registry[class]

	return ctor, ok
}

// Classes returns every registered class in name order.
func Classes() []Class {
	classes := make([]Class, 0, len(registry))
	for class := range registry {
		classes = append(classes, class)
	}
	slices.Sort(classes)

	return classes
}

// KeyOf builds the store key "<Class>.<id>".
func KeyOf(class Class, id string) string {
	return string(class) + "." + id
}

// Key returns the store key of a record.
func Key(r Record) string {
	return KeyOf(r.Class(), r.Meta().ID)
}

// SplitKey splits a store key into its class and id parts.
func SplitKey(key string) (Class, string, bool) {
	class, id, ok := strings.Cut(key, ".")
	if !ok || class == "" || id == "" {
		return "", "", false
	}

	return Class(class), id, true
}
