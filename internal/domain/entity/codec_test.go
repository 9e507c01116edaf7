package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	state := NewState("California")
	city := NewCity(state.ID, "San Francisco")
	amenity := NewAmenity("Wifi")
	user := NewUser("betty@holberton.io", "hashed")
	user.FirstName = "Betty"
	user.LastName = "Holberton"
	place := NewPlace(city.ID, user.ID, "Loft")
	place.Description = "Sunny loft"
	place.NumberRooms = 3
	place.NumberBathrooms = 1
	place.MaxGuest = 4
	place.PricePerNight = 120
	place.Latitude = 37.77
	place.Longitude = -122.41
	place.LinkAmenity(amenity.ID)
	review := NewReview(place.ID, user.ID, "Great stay")

	return []Record{state, city, amenity, user, place, review}
}

func TestNewBase_AssignsIdentity(t *testing.T) {
	a := NewBase()
	b := NewBase()

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Equal(t, time.UTC, a.CreatedAt.Location())
}

func TestSerialize_IncludesDiscriminatorAndTimestamps(t *testing.T) {
	state := NewState("Nevada")

	data := Serialize(state)

	assert.Equal(t, "State", data[ClassKey])
	assert.Equal(t, state.ID, data["id"])
	assert.Equal(t, "Nevada", data["name"])
	assert.Equal(t, state.CreatedAt.Format(TimeLayout), data["created_at"])
	assert.Equal(t, state.UpdatedAt.Format(TimeLayout), data["updated_at"])
}

func TestDeserialize_RoundTrip(t *testing.T) {
	for _, rec := range sampleRecords() {
		t.Run(rec.Class().String(), func(t *testing.T) {
			serialized := Serialize(rec)

			rebuilt, err := Deserialize(serialized)
			require.NoError(t, err)

			assert.IsType(t, rec, rebuilt)
			assert.Equal(t, serialized, Serialize(rebuilt))
		})
	}
}

func TestDeserialize_RoundTripThroughJSON(t *testing.T) {
	for _, rec := range sampleRecords() {
		t.Run(rec.Class().String(), func(t *testing.T) {
			raw, err := json.Marshal(Serialize(rec))
			require.NoError(t, err)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(raw, &decoded))

			rebuilt, err := Deserialize(decoded)
			require.NoError(t, err)
			assert.Equal(t, Serialize(rec), Serialize(rebuilt))
		})
	}
}

func TestDeserialize_UnknownClass(t *testing.T) {
	_, err := Deserialize(map[string]any{ClassKey: "Spaceship", "id": "1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownClass))
}

func TestDeserialize_MissingClass(t *testing.T) {
	_, err := Deserialize(map[string]any{"id": "1"})

	assert.ErrorIs(t, err, ErrMissingClass)
}

func TestDecode_FillsMissingIdentity(t *testing.T) {
	rec, err := Decode(ClassAmenity, map[string]any{"name": "Pool"})
	require.NoError(t, err)

	amenity, ok := rec.(*Amenity)
	require.True(t, ok)
	assert.Equal(t, "Pool", amenity.Name)
	assert.NotEmpty(t, amenity.ID)
	assert.False(t, amenity.CreatedAt.IsZero())
	assert.Equal(t, amenity.CreatedAt, amenity.UpdatedAt)
}

func TestClone_IsIndependentCopy(t *testing.T) {
	for _, r := range sampleRecords() {
		t.Run(r.Class().String(), func(t *testing.T) {
			clone, err := Clone(r)
			require.NoError(t, err)

			assert.NotSame(t, r.Meta(), clone.Meta())
			assert.Equal(t, Serialize(r), Serialize(clone))
		})
	}

	place := NewPlace("c", "u", "Loft")
	place.LinkAmenity("wifi")
	clone, err := Clone(place)
	require.NoError(t, err)

	clone.LinkAmenity("pool")
	clone.Name = "Attic"
	assert.Equal(t, []string{"wifi"}, place.AmenityIDs)
	assert.Equal(t, "Loft", place.Name)
}

func TestPatch(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		ignored []string
		wantErr bool
		check   func(t *testing.T, p *Place, original map[string]any)
	}{
		{
			name: "assigns known fields",
			data: map[string]any{"name": "Renamed", "number_rooms": float64(5), "latitude": float64(1)},
			check: func(t *testing.T, p *Place, _ map[string]any) {
				assert.Equal(t, "Renamed", p.Name)
				assert.Equal(t, 5, p.NumberRooms)
				assert.InDelta(t, 1.0, p.Latitude, 0.0001)
			},
		},
		{
			name:    "skips identity, timestamps and ignored keys",
			data:    map[string]any{"id": "other", "created_at": "x", "updated_at": "y", "city_id": "elsewhere", "user_id": "someone"},
			ignored: []string{"city_id", "user_id"},
			check: func(t *testing.T, p *Place, original map[string]any) {
				assert.Equal(t, original, Serialize(p))
			},
		},
		{
			name: "drops unknown keys",
			data: map[string]any{"colour": "blue"},
			check: func(t *testing.T, p *Place, original map[string]any) {
				assert.Equal(t, original, Serialize(p))
			},
		},
		{
			name:    "rejects wrong type without partial update",
			data:    map[string]any{"name": "Changed", "number_rooms": "many"},
			wantErr: true,
			check: func(t *testing.T, p *Place, original map[string]any) {
				assert.Equal(t, original, Serialize(p))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place := NewPlace("city", "user", "Loft")
			original := Serialize(place)

			err := Patch(place, tt.data, tt.ignored...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidField)
			} else {
				require.NoError(t, err)
			}
			tt.check(t, place, original)
		})
	}
}

func TestPlace_AmenityLinks(t *testing.T) {
	place := NewPlace("city", "user", "Loft")

	assert.True(t, place.LinkAmenity("a1"))
	assert.False(t, place.LinkAmenity("a1"))
	assert.True(t, place.LinkAmenity("a2"))
	assert.True(t, place.HasAmenity("a2"))

	assert.True(t, place.UnlinkAmenity("a1"))
	assert.False(t, place.UnlinkAmenity("a1"))
	assert.Equal(t, []string{"a2"}, place.AmenityIDs)
}

func TestKeys(t *testing.T) {
	city := NewCity("s", "Reno")

	key := Key(city)
	assert.Equal(t, "City."+city.ID, key)

	class, id, ok := SplitKey(key)
	require.True(t, ok)
	assert.Equal(t, ClassCity, class)
	assert.Equal(t, city.ID, id)

	_, _, ok = SplitKey("nodot")
	assert.False(t, ok)
}

func TestClasses(t *testing.T) {
	assert.Equal(t, []Class{ClassAmenity, ClassCity, ClassPlace, ClassReview, ClassState, ClassUser}, Classes())
	assert.True(t, ClassReview.IsValid())
	assert.False(t, Class("BaseModel").IsValid())
}
