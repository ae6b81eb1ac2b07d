package taskmesdk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskUpdateNullable(t *testing.T) {
	var upd TaskUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"description": null, "owner": "Sam"}`), &upd))

	require.True(t, upd.Description.Set)
	require.Nil(t, upd.Description.Value)
	require.True(t, upd.Owner.Set)
	require.Equal(t, "Sam", *upd.Owner.Value)
	require.False(t, upd.DueDate.Set)

	b, err := json.Marshal(TaskUpdate{Description: Null[string](), DueDate: Value("2025-07-01")})
	require.NoError(t, err)
	require.JSONEq(t, `{"description": null, "due_date": "2025-07-01"}`, string(b))
}

func TestRegisterValidate(t *testing.T) {
	require.Nil(t, RegisterRequest{Username: "alice", Email: "a@x.com", Password: "Passw0rd!"}.Validate())

	errs := RegisterRequest{Username: "al", Email: "nope", Password: "password1"}.Validate()
	require.Equal(t, UsernameLength, errs["username"])
	require.Equal(t, EmailInvalid, errs["email"])
	require.Equal(t, PasswordNoUpper, errs["password"])
}

func TestCheckPassword(t *testing.T) {
	tests := map[string]string{
		"Sh0rt":     PasswordTooShort,
		"password1": PasswordNoUpper,
		"PASSWORD1": PasswordNoLower,
		"Password":  PasswordNoDigit,
		"Passw0rd!": "",
	}
	for pw, want := range tests {
		require.Equal(t, want, CheckPassword(pw), pw)
	}
}
