// Package envflag parses comma-separated flag lists, as found in the
// DWGREP_DEBUG environment variable, into the fields of a struct.
package envflag

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Init uses Parse with the contents of the given environment variable as input.
func Init[T any](flags *T, envVar string) error {
	if err := Parse(flags, os.Getenv(envVar)); err != nil {
		return fmt.Errorf("cannot parse %s: %w", envVar, err)
	}
	return nil
}

// Parse initializes the fields in flags from the attached struct field tags as
// well as the contents of the given string.
//
// A field tag of the form `envflag:"default:true"` sets a default other than
// the zero value. Fields tagged `envflag:"deprecated"` may only be set to
// their default value.
//
// The string holds a comma-separated list of name=value pairs. A bare name
// is short for name=true and is only valid for boolean fields. Names are
// matched case insensitively. Booleans are parsed by [strconv.ParseBool],
// integers by [strconv.Atoi], and strings are taken verbatim.
func Parse[T any](flags *T, env string) error {
	fs, err := newFieldSet(reflect.ValueOf(flags).Elem())
	if err != nil {
		return err
	}

	var errs []error
	for _, elem := range strings.Split(env, ",") {
		// Empty elements let callers append to a possibly empty variable,
		// as in DWGREP_DEBUG=$DWGREP_DEBUG,strict.
		if elem == "" {
			continue
		}
		if err := fs.set(elem); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type fieldSet struct {
	v          reflect.Value
	index      map[string]int
	deprecated map[string]bool
}

func newFieldSet(v reflect.Value) (*fieldSet, error) {
	fs := &fieldSet{
		v:          v,
		index:      make(map[string]int),
		deprecated: make(map[string]bool),
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.ToLower(field.Name)
		fs.index[name] = i

		tag, ok := field.Tag.Lookup("envflag")
		if !ok {
			continue
		}
		for _, f := range strings.Split(tag, ",") {
			key, rest, hasRest := strings.Cut(f, ":")
			switch key {
			case "default":
				val, err := parseValue(name, field.Type.Kind(), rest)
				if err != nil {
					return nil, err
				}
				v.Field(i).Set(reflect.ValueOf(val))
			case "deprecated":
				if hasRest {
					return nil, fmt.Errorf("cannot have a value for deprecated tag")
				}
				fs.deprecated[name] = true
			default:
				return nil, fmt.Errorf("unknown envflag tag %q", f)
			}
		}
	}
	return fs, nil
}

func (fs *fieldSet) set(elem string) error {
	name, str, hasValue := strings.Cut(elem, "=")
	name = strings.ToLower(name)
	i, ok := fs.index[name]
	if !ok {
		return fmt.Errorf("unknown flag %q", elem)
	}
	field := fs.v.Field(i)

	var val any
	switch {
	case hasValue:
		var err error
		if val, err = parseValue(name, field.Kind(), str); err != nil {
			return err
		}
	case field.Kind() == reflect.Bool:
		val = true
	default:
		return fmt.Errorf("value needed for %s flag %q", field.Kind(), name)
	}

	if fs.deprecated[name] {
		if field.Interface() != val {
			return fmt.Errorf("cannot change default value of deprecated flag %q", name)
		}
		return nil
	}
	field.Set(reflect.ValueOf(val))
	return nil
}

func parseValue(name string, kind reflect.Kind, str string) (val any, err error) {
	switch kind {
	case reflect.Bool:
		val, err = strconv.ParseBool(str)
	case reflect.Int:
		val, err = strconv.Atoi(str)
	case reflect.String:
		val = str
	default:
		return nil, errInvalid{fmt.Errorf("unsupported kind %s", kind)}
	}
	if err != nil {
		return nil, errInvalid{fmt.Errorf("invalid %s value for %s: %v", kind, name, err)}
	}
	return val, nil
}

// ErrInvalid indicates a malformed input string.
var ErrInvalid = errors.New("invalid value")

type errInvalid struct{ error }

func (errInvalid) Is(err error) bool {
	return err == ErrInvalid
}
