package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bumbitzu/cheatsheet/internal/common"
	"github.com/bumbitzu/cheatsheet/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func aliceStore(t *testing.T) mapFinder {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	return mapFinder{
		"alice": {ID: "u1", UserName: "alice", PasswordHash: string(hash)},
	}
}

func TestVerifier_AliceScenario(t *testing.T) {
	ctx := context.Background()
	store := aliceStore(t)
	v := NewVerifier(store, NewBcryptHasher(bcrypt.MinCost), nil)
	m := NewSessionMapper(store)

	out, err := v.Verify(ctx, "alice", "secret")
	require.NoError(t, err)
	require.True(t, out.OK())
	assert.Equal(t, "u1", out.User.ID)
	assert.Equal(t, "alice", out.User.UserName)

	out, err = v.Verify(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.Equal(t, Failure(ReasonBadPassword), out)

	out, err = v.Verify(ctx, "bob", "x")
	require.NoError(t, err)
	assert.Equal(t, Failure(ReasonUnknownUser), out)

	ok, err := v.Verify(ctx, "alice", "secret")
	require.NoError(t, err)
	sid := m.Serialize(ok.User)
	assert.Equal(t, SessionID("u1"), sid)

	got, err := m.Deserialize(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, store["alice"], got)
}

func TestVerifier_UsernameIsCaseSensitive(t *testing.T) {
	v := NewVerifier(aliceStore(t), NewBcryptHasher(bcrypt.MinCost), nil)

	out, err := v.Verify(context.Background(), "Alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, Failure(ReasonUnknownUser), out)
}

func TestVerifier_LookupErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	h := &fakeHasher{}
	v := NewVerifier(&fakeFinder{
		byUsernameFn: func(context.Context, string) (*models.User, error) { return nil, boom },
	}, h, nil)

	out, err := v.Verify(context.Background(), "alice", "secret")
	require.Error(t, err)
	assert.False(t, out.OK())
	assert.Empty(t, out.Reason, "a fault must not look like a failed login")

	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.True(t, IsInfrastructure(err))
	assert.Zero(t, h.calls, "hash comparison must not start after a failed lookup")
}

func TestVerifier_UnknownUserSkipsComparison(t *testing.T) {
	h := &fakeHasher{}
	v := NewVerifier(&fakeFinder{}, h, nil)

	out, err := v.Verify(context.Background(), "ghost", "pw")
	require.NoError(t, err)
	assert.Equal(t, ReasonUnknownUser, out.Reason)
	assert.Zero(t, h.calls)
}

func TestVerifier_NilUserWithoutErrorIsUnknown(t *testing.T) {
	v := NewVerifier(&fakeFinder{
		byUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
	}, &fakeHasher{}, nil)

	out, err := v.Verify(context.Background(), "ghost", "pw")
	require.NoError(t, err)
	assert.Equal(t, ReasonUnknownUser, out.Reason)
}

func TestVerifier_WrappedNotFoundIsUnknown(t *testing.T) {
	v := NewVerifier(&fakeFinder{
		byUsernameFn: func(context.Context, string) (*models.User, error) {
			return nil, errors.Join(errors.New("users"), common.ErrorNotFound)
		},
	}, &fakeHasher{}, nil)

	out, err := v.Verify(context.Background(), "ghost", "pw")
	require.NoError(t, err)
	assert.Equal(t, ReasonUnknownUser, out.Reason)
}

func TestVerifier_HashComparisonErrorPropagates(t *testing.T) {
	fault := errors.New("bad hash prefix")
	v := NewVerifier(mapFinder{"alice": {ID: "u1", UserName: "alice", PasswordHash: "x"}},
		&fakeHasher{compareFn: func(string, string) (bool, error) { return false, fault }}, nil)

	out, err := v.Verify(context.Background(), "alice", "secret")
	require.Error(t, err)
	assert.NotEqual(t, ReasonBadPassword, out.Reason)

	var he *HashComparisonError
	require.ErrorAs(t, err, &he)
	assert.ErrorIs(t, err, fault)
	assert.True(t, IsInfrastructure(err))
}

func TestVerifier_MalformedStoredHashIsAFault(t *testing.T) {
	v := NewVerifier(mapFinder{"alice": {ID: "u1", UserName: "alice", PasswordHash: "not-a-bcrypt-hash"}},
		NewBcryptHasher(bcrypt.MinCost), nil)

	_, err := v.Verify(context.Background(), "alice", "secret")
	var he *HashComparisonError
	require.ErrorAs(t, err, &he)
}

func TestVerifier_PassesContextToStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := NewVerifier(&fakeFinder{
		byUsernameFn: func(ctx context.Context, _ string) (*models.User, error) { return nil, ctx.Err() },
	}, &fakeHasher{}, nil)

	_, err := v.Verify(ctx, "alice", "secret")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVerifier_Name(t *testing.T) {
	var s Strategy = NewVerifier(&fakeFinder{}, &fakeHasher{}, nil)
	assert.Equal(t, "local", s.Name())
}

func TestVerifier_ManyUsers(t *testing.T) {
	h := &fakeHasher{}
	store := mapFinder{}
	for _, name := range []string{"ana", "ion", "maria", "vlad"} {
		store[name] = &models.User{ID: "id-" + name, UserName: name, PasswordHash: "hashed:pw-" + name}
	}
	v := NewVerifier(store, h, nil)
	ctx := context.Background()

	for name := range store {
		out, err := v.Verify(ctx, name, "pw-"+name)
		require.NoError(t, err)
		require.True(t, out.OK(), name)
		assert.Equal(t, name, out.User.UserName)

		out, err = v.Verify(ctx, name, "nope")
		require.NoError(t, err)
		assert.Equal(t, ReasonBadPassword, out.Reason)
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "success", Success(&models.User{}).String())
	assert.Equal(t, "failure(unknown-user)", Failure(ReasonUnknownUser).String())
	assert.Equal(t, "failure(bad-password)", Failure(ReasonBadPassword).String())
}

func TestVerifier_UnusualPasswordsAreBadPassword(t *testing.T) {
	v := NewVerifier(aliceStore(t), NewBcryptHasher(bcrypt.MinCost), nil)

	for _, pw := range []string{"", strings.Repeat("x", 100)} {
		out, err := v.Verify(context.Background(), "alice", pw)
		require.NoError(t, err, "password of length %d", len(pw))
		assert.Equal(t, Failure(ReasonBadPassword), out)
	}
}
