package testutil

import (
	"os/user"
	"strconv"

	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/users"
)

// Account is an entry of the fake account table
type Account struct {
	Name string
	UID  int
	GID  int
	Home string
	// NoHome leaves the home directory uncreated in an Environment
	NoHome bool
}

// NewResolver returns a users.Resolver that resolves only the given accounts.
// Home directories are checked against fsys like the real resolver does.
func NewResolver(fsys filesystem.FS, accounts ...Account) *users.Resolver {
	toUser := func(a Account) *user.User {
		return &user.User{
			Username: a.Name,
			Uid:      strconv.Itoa(a.UID),
			Gid:      strconv.Itoa(a.GID),
			Name:     a.Name,
			HomeDir:  a.Home,
		}
	}

	return &users.Resolver{
		FS: fsys,
		ByName: func(name string) (*user.User, error) {
			for _, a := range accounts {
				if a.Name == name {
					return toUser(a), nil
				}
			}
			return nil, user.UnknownUserError(name)
		},
		ByID: func(uid string) (*user.User, error) {
			for _, a := range accounts {
				if strconv.Itoa(a.UID) == uid {
					return toUser(a), nil
				}
			}
			n, _ := strconv.Atoi(uid)
			return nil, user.UnknownUserIdError(n)
		},
	}
}
