package mongoclient

import (
	"errors"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

var ErrNotFoundField = errors.New("not found field name")

// MakeBsonM flattens a struct (or pointer to struct) into a bson.M using
// the struct's bson tags. Zero-valued and omitempty fields are skipped,
// pointer fields are dereferenced.
func MakeBsonM(patchable interface{}) (bson.M, error) {
	val := reflect.ValueOf(patchable)
	if val.Kind() == reflect.Ptr && val.Elem().Kind() == reflect.Struct {
		val = val.Elem()
	}

	res := bson.M{}
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		tag, err := bsoncodec.DefaultStructTagParser(val.Type().Field(i))
		if err != nil {
			return nil, err
		}
		if tag.Skip || !field.CanInterface() {
			continue
		}
		if tag.OmitEmpty && field.IsZero() {
			continue
		}
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				continue
			}
			res[tag.Name] = field.Elem().Interface()
			continue
		}
		if !field.IsZero() {
			res[tag.Name] = field.Interface()
		}
	}
	return res, nil
}
