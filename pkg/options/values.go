package options

import (
	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/users"
)

// Keys of the options every command shares
const (
	KeyPath      = "path"
	KeyUsers     = "users"
	KeyForce     = "force"
	KeyNoop      = "noop"
	KeyQuiet     = "quiet"
	KeyVerbosity = "verbosity"
)

// Values holds parsed option values
type Values struct {
	// Path is the explicit installation root override; see Options.Path
	Path  string
	Users []users.User
	Force bool
	// Noop is dry-run mode: compute, never mutate the filesystem
	Noop      bool
	Quiet     bool
	Verbosity int

	// Extra holds command specific keys
	Extra map[string]interface{}
}

func (v Values) clone() Values {
	c := v
	if v.Users != nil {
		c.Users = append([]users.User(nil), v.Users...)
	}
	c.Extra = make(map[string]interface{}, len(v.Extra))
	for k, val := range v.Extra {
		c.Extra[k] = val
	}
	return c
}

func (v *Values) set(key string, value interface{}) error {
	ok := true
	switch key {
	case KeyPath:
		if s, isString := value.(string); isString {
			v.Path = s
		} else {
			ok = false
		}
	case KeyUsers:
		if list, isList := value.([]users.User); isList {
			v.Users = list
		} else {
			ok = false
		}
	case KeyForce, KeyNoop, KeyQuiet:
		b, isBool := value.(bool)
		if !isBool {
			ok = false
			break
		}
		switch key {
		case KeyForce:
			v.Force = b
		case KeyNoop:
			v.Noop = b
		default:
			v.Quiet = b
		}
	case KeyVerbosity:
		if n, isInt := value.(int); isInt {
			v.Verbosity = n
		} else {
			ok = false
		}
	default:
		if v.Extra == nil {
			v.Extra = make(map[string]interface{})
		}
		v.Extra[key] = value
	}

	if !ok {
		return errors.Newf(errors.ErrInvalidInput, "option %s cannot hold a %T", key, value).
			WithDetail("key", key)
	}
	return nil
}

func (v *Values) get(key string) interface{} {
	switch key {
	case KeyUsers:
		return v.Users
	case KeyForce:
		return v.Force
	case KeyNoop:
		return v.Noop
	case KeyQuiet:
		return v.Quiet
	case KeyVerbosity:
		return v.Verbosity
	default:
		return v.Extra[key]
	}
}
