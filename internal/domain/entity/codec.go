package entity

import (
	"slices"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

const (
	// ClassKey is the serialized field holding the discriminator.
	ClassKey = "__class__"

	// TimeLayout renders timestamps in the serialized form (always UTC).
	TimeLayout = "2006-01-02T15:04:05.000000"
)

var (
	// ErrUnknownClass is returned when a discriminator has no registered constructor.
	ErrUnknownClass = errors.New("unknown record class")
	// ErrMissingClass is returned when a serialized record carries no discriminator.
	ErrMissingClass = errors.New("serialized record has no class")
	// ErrInvalidField is returned when a value cannot be assigned to a record field.
	ErrInvalidField = errors.New("invalid field value")
)

// immutableKeys can never be changed through Patch.
var immutableKeys = []string{"id", "created_at", "updated_at", ClassKey}

// Serialize converts a record into its flat field mapping, including the
// discriminator and both timestamps rendered with TimeLayout.
func Serialize(r Record) map[string]any {
	out := r.Fields()
	meta := r.Meta()
	out["id"] = meta.ID
	out["created_at"] = meta.CreatedAt.UTC().Format(TimeLayout)
	out["updated_at"] = meta.UpdatedAt.UTC().Format(TimeLayout)
	out[ClassKey] = string(r.Class())

	return out
}

// Deserialize rebuilds a record from its serialized form, dispatching on the
// discriminator stored in the mapping.
func Deserialize(data map[string]any) (Record, error) {
	raw, ok := data[ClassKey]
	if !ok {
		return nil, ErrMissingClass
	}
	class, ok := raw.(string)
	if !ok {
		return nil, errors.Wrapf(ErrMissingClass, "discriminator has type %T", raw)
	}

	return Decode(Class(class), data)
}

// Decode rebuilds a record of the given class. Every field present in data is
// copied verbatim, including id and timestamps; a missing id or timestamp is
// filled in as it would be for a new record.
func Decode(class Class, data map[string]any) (Record, error) {
	ctor, ok := Lookup(class)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownClass, "%q", class)
	}

	rec := ctor()
	if err := decodeInto(rec, data); err != nil {
		return nil, errors.Wrapf(err, "decode %s", class)
	}
	rec.Meta().fillDefaults()

	return rec, nil
}

// Clone returns a deep copy of r rebuilt from its serialized form. Live
// records are shared between requests, so changes are made on a clone and
// the clone is registered in place of the original.
func Clone[T Record](r T) (T, error) {
	var zero T

	rec, err := Decode(r.Class(), Serialize(r))
	if err != nil {
		return zero, err
	}
	out, ok := rec.(T)
	if !ok {
		return zero, errors.Errorf("clone %s: got %T", r.Class(), rec)
	}

	return out, nil
}

// Patch assigns the values in data to the matching fields of r. Identity,
// timestamps, the discriminator and any key in ignored are skipped; keys that
// name no field are dropped. The record is left untouched if any value has
// the wrong type.
func Patch(r Record, data map[string]any, ignored ...string) error {
	filtered := make(map[string]any, len(data))
	for key, value := range data {
		if slices.Contains(immutableKeys, key) || slices.Contains(ignored, key) {
			continue
		}
		filtered[key] = value
	}
	if len(filtered) == 0 {
		return nil
	}

	// Decode into a copy first so a type error cannot leave r half-updated.
	scratch, err := Decode(r.Class(), Serialize(r))
	if err != nil {
		return err
	}
	if err := decodeInto(scratch, filtered); err != nil {
		return errors.Wrap(ErrInvalidField, err.Error())
	}

	return decodeInto(r, filtered)
}

func decodeInto(target Record, data map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(TimeLayout),
		),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(decoder.Decode(data))
}
