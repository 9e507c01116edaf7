package postgres

import (
	"hbnb/internal/domain/entity"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// table binds a record class to its GORM model.
type table struct {
	class  entity.Class
	model  any
	list   func(tx *gorm.DB) ([]entity.Record, error)
	find   func(tx *gorm.DB, id string) (entity.Record, bool, error)
	upsert func(tx *gorm.DB, r entity.Record) error
	remove func(tx *gorm.DB, id string) error
}

func newTable[M any, R entity.Record](class entity.Class, toModel func(R) *M, toDomain func(*M) R) table {
	return table{
		class: class,
		model: new(M),
		list: func(tx *gorm.DB) ([]entity.Record, error) {
			var rows []M
			if err := tx.Find(&rows).Error; err != nil {
				return nil, errors.Wrapf(err, "failed to list %s", class)
			}

			out := make([]entity.Record, 0, len(rows))
			for i := range rows {
				out = append(out, toDomain(&rows[i]))
			}

			return out, nil
		},
		find: func(tx *gorm.DB, id string) (entity.Record, bool, error) {
			var row M
			err := tx.Where("id = ?", id).Take(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, errors.Wrapf(err, "failed to find %s", class)
			}

			return toDomain(&row), true, nil
		},
		upsert: func(tx *gorm.DB, r entity.Record) error {
			typed, ok := r.(R)
			if !ok {
				return errors.Errorf("record %s is not a %s", entity.Key(r), class)
			}

			err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(toModel(typed)).Error

			return translateError(err, "failed to write %s", entity.Key(r))
		},
		remove: func(tx *gorm.DB, id string) error {
			err := tx.Where("id = ?", id).Delete(new(M)).Error

			return translateError(err, "failed to delete %s", entity.KeyOf(class, id))
		},
	}
}

var tables = map[entity.Class]table{
	entity.ClassState:   newTable(entity.ClassState, fromState, toState),
	entity.ClassCity:    newTable(entity.ClassCity, fromCity, toCity),
	entity.ClassAmenity: newTable(entity.ClassAmenity, fromAmenity, toAmenity),
	entity.ClassUser:    newTable(entity.ClassUser, fromUser, toUser),
	entity.ClassPlace:   newTable(entity.ClassPlace, fromPlace, toPlace),
	entity.ClassReview:  newTable(entity.ClassReview, fromReview, toReview),
}

// tablesFor returns the table of class, or every table when class is empty.
func tablesFor(class entity.Class) ([]table, error) {
	if class == "" {
		out := make([]table, 0, len(tables))
		for _, c := range entity.Classes() {
			if t, ok := tables[c]; ok {
				out = append(out, t)
			}
		}

		return out, nil
	}

	t, ok := tables[class]
	if !ok {
		return nil, errors.Wrapf(entity.ErrUnknownClass, "%q has no table", class)
	}

	return []table{t}, nil
}
