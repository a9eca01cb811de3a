package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	name, err := Name("  Anand  ")
	require.NoError(t, err)
	assert.Equal(t, "Anand", name)

	_, err = Name("  ab ")
	require.Error(t, err)

	_, err = Name("   ")
	require.Error(t, err)
}

func TestEmail(t *testing.T) {
	email, err := Email("  Someone@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "someone@example.com", email)

	_, err = Email("not-an-email")
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
		common   bool
	}{
		{name: "valid", password: "Str0ng!Pass", wantErr: false},
		{name: "too short", password: "S0rt!x", wantErr: true},
		{name: "too long", password: "Str0ng!Pass" + strings.Repeat("x", 10), wantErr: true},
		{name: "no digit", password: "Strong!Pass", wantErr: true},
		{name: "no upper", password: "str0ng!pass", wantErr: true},
		{name: "no lower", password: "STR0NG!PASS", wantErr: true},
		{name: "no symbol", password: "Str0ngPass", wantErr: true},
		{name: "denylisted lowercase", password: "Xy!admin9Z", wantErr: true, common: true},
		{name: "denylisted mixed case", password: "Xy!AdMiN9Z", wantErr: true, common: true},
		{name: "denylisted digits", password: "Zz!x123yW", wantErr: true, common: true},
		{name: "denylisted word", password: "My!PassWord7", wantErr: true, common: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.common {
				assert.Contains(t, err.Error(), "common passwords")
			}
		})
	}
}

func TestAge(t *testing.T) {
	require.NoError(t, Age(13))
	require.NoError(t, Age(40))
	require.Error(t, Age(12))
}

func TestDescription(t *testing.T) {
	description, err := Description("  buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", description)

	_, err = Description("ab")
	require.Error(t, err)

	_, err = Description(strings.Repeat("a", 36))
	require.Error(t, err)

	_, err = Description(strings.Repeat("a", 35))
	require.NoError(t, err)
}

func TestPassword_CharacterClassesAreASCII(t *testing.T) {
	// mathematical bold digits and letters, plus Arabic-Indic digits
	require.Error(t, Password("Xy!𝟗𝟗𝟗𝟗𝟗𝟗"))
	require.Error(t, Password("Xy!٣٤٥٦٧٨"))
	require.Error(t, Password("𝐗𝐲!9zzzzz"))

	// non-ASCII runes are allowed alongside the required ASCII classes
	require.NoError(t, Password("Xy!9é𝟗𝟗𝟗𝟗𝟗𝟗𝟗𝟗𝟗𝟗𝟗𝟗𝟗𝟗𝟗"))
}

func TestDecodeAge(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: `20`, want: 20},
		{raw: `"20"`, want: 20},
		{raw: `" 31 "`, want: 31},
		{raw: `20.0`, want: 20},
		{raw: `20.5`, wantErr: true},
		{raw: `"twenty"`, wantErr: true},
		{raw: `true`, wantErr: true},
		{raw: `null`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			age, err := DecodeAge(json.RawMessage(tt.raw))
			if tt.wantErr {
				var verr *Error
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "age", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, age)
		})
	}
}
