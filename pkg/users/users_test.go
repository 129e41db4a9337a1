package users_test

import (
	"testing"

	"github.com/arthur-debert/haus/pkg/errors"
	"github.com/arthur-debert/haus/pkg/filesystem"
	"github.com/arthur-debert/haus/pkg/testutil"
	"github.com/arthur-debert/haus/pkg/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryResolver(t *testing.T) *users.Resolver {
	t.Helper()

	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/root", 0700))
	require.NoError(t, fs.MkdirAll("/home/guns", 0755))

	return testutil.NewResolver(fs,
		testutil.Account{Name: "root", UID: 0, GID: 0, Home: "/root"},
		testutil.Account{Name: "guns", UID: 1000, GID: 100, Home: "/home/guns"},
		testutil.Account{Name: "ghost", UID: 1001, GID: 100, Home: "/home/ghost"},
	)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		token string
		want  interface{}
	}{
		{"0", 0},
		{"1000", 1000},
		{"guns", "guns"},
		{"1000a", "1000a"},
		{"-1", "-1"},
		{" 42 ", 42},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, users.ParseID(tt.token))
		})
	}
}

func TestResolve(t *testing.T) {
	r := memoryResolver(t)

	t.Run("by numeric id", func(t *testing.T) {
		u, err := r.Resolve(0)
		require.NoError(t, err)
		assert.Equal(t, users.User{Name: "root", UID: 0, GID: 0, Home: "/root"}, u)
	})

	t.Run("by name", func(t *testing.T) {
		u, err := r.Resolve("guns")
		require.NoError(t, err)
		assert.Equal(t, 1000, u.UID)
		assert.Equal(t, 100, u.GID)
		assert.Equal(t, "/home/guns", u.Home)
		assert.Equal(t, "guns", u.String())
	})

	t.Run("missing home fails fast", func(t *testing.T) {
		_, err := r.Resolve("ghost")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUserHomeMissing))
		assert.Equal(t, `ghost's home directory, "/home/ghost", does not exist`, errors.UserMessage(err))

		details := errors.GetErrorDetails(err)
		assert.Equal(t, "ghost", details["user"])
		assert.Equal(t, "/home/ghost", details["dir"])
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := r.Resolve("nobody2")
		assert.True(t, errors.IsErrorCode(err, errors.ErrUserNotFound))

		_, err = r.Resolve(4242)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUserNotFound))
	})

	t.Run("unsupported id type", func(t *testing.T) {
		_, err := r.Resolve(3.14)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

		_, err = r.Resolve("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("existing user is revalidated", func(t *testing.T) {
		_, err := r.Resolve(users.User{Name: "gone", Home: "/home/gone"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrUserHomeMissing))
	})
}

func TestResolveAll(t *testing.T) {
	r := memoryResolver(t)

	t.Run("preserves order", func(t *testing.T) {
		list, err := r.ResolveAll([]interface{}{"guns", 0})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "guns", list[0].Name)
		assert.Equal(t, "root", list[1].Name)
		assert.Equal(t, "guns(1000), root(0)", users.Describe(list))
	})

	t.Run("any invalid entry aborts", func(t *testing.T) {
		list, err := r.ResolveAll([]interface{}{0, "ghost", "guns"})
		require.Error(t, err)
		assert.Nil(t, list)
	})
}

func TestNewResolver_CurrentUser(t *testing.T) {
	env := testutil.NewEnvironment(t)
	r := users.NewResolver(env.FS)

	// The system database knows the current user; its home may not exist
	// in minimal containers, which must surface as a home error.
	u, err := r.Resolve(env.Accounts[0].UID)
	if err != nil {
		assert.True(t, errors.IsErrorCode(err, errors.ErrUserHomeMissing) ||
			errors.IsErrorCode(err, errors.ErrUserNotFound), "got %v", err)
		return
	}
	assert.Equal(t, env.Accounts[0].UID, u.UID)
}
