package util

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// IsStructInitialized reports an error naming every exported pointer,
// interface, map, slice or func field of s that is nil. Fields tagged
// `ready:"-"` are skipped.
func IsStructInitialized(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.New("struct is nil")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return errors.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()
	var missing []string
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("ready") == "-" {
			continue
		}

		switch f := v.Field(i); f.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if f.IsNil() {
				missing = append(missing, field.Name)
			}
		}
	}

	if len(missing) > 0 {
		return errors.Errorf("uninitialized fields: %s", strings.Join(missing, ", "))
	}

	return nil
}
