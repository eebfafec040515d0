package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/beautystore/internal/client/client"
	"github.com/dmitrijs2005/beautystore/internal/client/models"
	"github.com/dmitrijs2005/beautystore/internal/common"
	"github.com/dmitrijs2005/beautystore/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(fc *fakeClient) AccountService {
	return NewAccountService(fc, logging.NewNopLogger())
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name                        string
		uname, email, pass, confirm string
		want                        error
	}{
		{"no name", "", "a@b.com", "secret1", "secret1", common.ErrNameRequired},
		{"blank name", "   ", "a@b.com", "secret1", "secret1", common.ErrNameRequired},
		{"no email", "Ana", " ", "secret1", "secret1", common.ErrEmailRequired},
		{"no password", "Ana", "a@b.com", "", "", common.ErrPasswordRequired},
		{"mismatch", "Ana", "a@b.com", "secret1", "secret2", common.ErrPasswordMismatch},
		{"too short", "Ana", "a@b.com", "abc", "abc", common.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			_, err := newAccount(fc).Register(context.Background(), tt.uname, tt.email, tt.pass, tt.confirm)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Zero(t, fc.FindUserCalls, "validation errors are never sent remotely")
			assert.Zero(t, fc.InsertUserCalls)
		})
	}
}

func TestRegister_ExistingEmailNeverInserts(t *testing.T) {
	fc := &fakeClient{FindUserFound: true, FindUserRet: &models.User{ID: "u-1", Email: "a@b.com"}}

	u, err := newAccount(fc).Register(context.Background(), "Ana", "a@b.com", "secret1", "secret1")
	require.ErrorIs(t, err, common.ErrEmailTaken)
	assert.Contains(t, err.Error(), "already registered")
	assert.Nil(t, u)
	assert.Equal(t, 1, fc.FindUserCalls)
	assert.Zero(t, fc.InsertUserCalls)
}

func TestRegister_Success_NormalizesEmail(t *testing.T) {
	fc := &fakeClient{}

	u, err := newAccount(fc).Register(context.Background(), " Ana ", " A@B.com ", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u-new", u.ID)
	assert.Equal(t, "a@b.com", fc.LastFindEmail)
	assert.Equal(t, "a@b.com", fc.LastInsertEmail)
	assert.Equal(t, "Ana", fc.LastInsertName)
}

func TestRegister_LookupFailureStops(t *testing.T) {
	fc := &fakeClient{FindUserErr: client.ErrUnavailable}

	_, err := newAccount(fc).Register(context.Background(), "Ana", "a@b.com", "secret1", "secret1")
	require.ErrorIs(t, err, client.ErrRemoteCall)
	assert.Zero(t, fc.InsertUserCalls)
}

func TestRegister_InsertFailureWrapped(t *testing.T) {
	fc := &fakeClient{InsertUserErr: client.ErrRemoteCall}

	_, err := newAccount(fc).Register(context.Background(), "Ana", "a@b.com", "secret1", "secret1")
	require.ErrorIs(t, err, client.ErrRemoteCall)
	assert.Contains(t, err.Error(), "register")
}

func TestRegister_LostRaceReportsEmailTaken(t *testing.T) {
	fc := &fakeClient{InsertUserErr: common.ErrorAlreadyExists}

	_, err := newAccount(fc).Register(context.Background(), "Ana", "a@b.com", "secret1", "secret1")
	require.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestProfile(t *testing.T) {
	fc := &fakeClient{GetUserRet: &models.User{ID: "u-1", Name: "Ana"}}
	u, err := newAccount(fc).Profile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	fc = &fakeClient{GetUserErr: common.ErrorNotFound}
	_, err = newAccount(fc).Profile(context.Background(), "u-1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("name only", func(t *testing.T) {
		fc := &fakeClient{}
		u, err := newAccount(fc).UpdateProfile(context.Background(), "u-1", "Bea", "")
		require.NoError(t, err)
		assert.Equal(t, "Bea", u.Name)
		require.NotNil(t, fc.LastUpdateName)
		assert.Nil(t, fc.LastUpdatePass)
	})

	t.Run("password only", func(t *testing.T) {
		fc := &fakeClient{}
		_, err := newAccount(fc).UpdateProfile(context.Background(), "u-1", "", "newsecret")
		require.NoError(t, err)
		assert.Nil(t, fc.LastUpdateName)
		require.NotNil(t, fc.LastUpdatePass)
		assert.Equal(t, "newsecret", *fc.LastUpdatePass)
	})

	t.Run("short password rejected locally", func(t *testing.T) {
		fc := &fakeClient{}
		_, err := newAccount(fc).UpdateProfile(context.Background(), "u-1", "Bea", "abc")
		require.ErrorIs(t, err, common.ErrPasswordTooShort)
		assert.Zero(t, fc.UpdateUserCalls)
	})

	t.Run("nothing to change reads profile", func(t *testing.T) {
		fc := &fakeClient{GetUserRet: &models.User{ID: "u-1", Name: "Ana"}}
		u, err := newAccount(fc).UpdateProfile(context.Background(), "u-1", " ", "")
		require.NoError(t, err)
		assert.Equal(t, "Ana", u.Name)
		assert.Zero(t, fc.UpdateUserCalls)
	})

	t.Run("remote failure", func(t *testing.T) {
		fc := &fakeClient{UpdateUserErr: client.ErrUnauthorized}
		_, err := newAccount(fc).UpdateProfile(context.Background(), "u-1", "Bea", "")
		require.ErrorIs(t, err, client.ErrUnauthorized)
	})
}

func TestPing(t *testing.T) {
	fc := &fakeClient{PingErr: errors.New("down")}
	require.Error(t, newAccount(fc).Ping(context.Background()))
}
