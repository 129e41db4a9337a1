// Package users resolves target accounts for haus commands. A User is only
// ever constructed with a home directory that exists.
package users

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/filesystem"
)

// User is one resolved target account
type User struct {
	Name string
	UID  int
	GID  int
	Home string
}

func (u User) String() string {
	return u.Name
}

// Resolver turns names and numeric ids into Users. ByName and ByID default
// to the os/user lookups and may be replaced to resolve against a fixed
// account table.
type Resolver struct {
	FS     filesystem.FS
	ByName func(name string) (*user.User, error)
	ByID   func(uid string) (*user.User, error)
}

// NewResolver returns a Resolver backed by the system account database
func NewResolver(fsys filesystem.FS) *Resolver {
	return &Resolver{
		FS:     fsys,
		ByName: user.Lookup,
		ByID:   user.LookupId,
	}
}

// ParseID converts a command line token: all-digit tokens become numeric
// ids, anything else stays a name
func ParseID(token string) interface{} {
	token = strings.TrimSpace(token)
	if token == "" {
		return token
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return token
		}
	}
	if n, err := strconv.Atoi(token); err == nil {
		return n
	}
	return token
}

// Resolve looks up id, an int uid, a string name or an existing User, and
// verifies the account's home directory exists
func (r *Resolver) Resolve(id interface{}) (User, error) {
	var (
		account *user.User
		err     error
	)

	switch v := id.(type) {
	case User:
		return r.checkHome(v)
	case int:
		account, err = r.ByID(strconv.Itoa(v))
	case string:
		if v == "" {
			return User{}, errors.New(errors.ErrInvalidInput, "empty user name")
		}
		account, err = r.ByName(v)
	default:
		return User{}, errors.Newf(errors.ErrInvalidInput, "cannot resolve user from %T", id)
	}

	if err != nil {
		return User{}, errors.Wrapf(err, errors.ErrUserNotFound, "no such user: %v", id).
			WithDetail("user", id)
	}

	u := User{
		Name: account.Username,
		UID:  atoi(account.Uid),
		GID:  atoi(account.Gid),
		Home: account.HomeDir,
	}
	if abs, aerr := filepath.Abs(u.Home); aerr == nil && u.Home != "" {
		u.Home = abs
	}

	return r.checkHome(u)
}

// ResolveAll resolves every id in order and stops at the first failure
func (r *Resolver) ResolveAll(ids []interface{}) ([]User, error) {
	resolved := make([]User, 0, len(ids))
	for _, id := range ids {
		u, err := r.Resolve(id)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, u)
	}
	return resolved, nil
}

func (r *Resolver) checkHome(u User) (User, error) {
	if u.Home == "" || !filesystem.IsDir(r.FS, u.Home) {
		return User{}, errors.Newf(errors.ErrUserHomeMissing,
			"%s's home directory, %q, does not exist", u.Name, u.Home).
			WithDetail("user", u.Name).
			WithDetail("dir", u.Home)
	}
	return u, nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// Describe renders a list of users as "name(uid)" pairs
func Describe(list []User) string {
	parts := make([]string, len(list))
	for i, u := range list {
		parts[i] = fmt.Sprintf("%s(%d)", u.Name, u.UID)
	}
	return strings.Join(parts, ", ")
}
