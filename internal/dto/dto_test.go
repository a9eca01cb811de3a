package dto

import (
	"encoding/json"
	"testing"

	"github.com/actionanand/Ctrl-Alt-Del/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUserDTO_OmitsSecrets(t *testing.T) {
	user := models.User{
		ID:           3,
		Name:         "Tester",
		Email:        "tester@example.com",
		PasswordHash: "$2a$08$hash",
		Age:          21,
		Avatar:       []byte{1, 2, 3},
	}

	body, err := json.Marshal(ToUserDTO(user))
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Equal(t, float64(3), fields["_id"])
	assert.Equal(t, "tester@example.com", fields["email"])
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "tokens")
	assert.NotContains(t, fields, "avatar")
	assert.NotContains(t, string(body), "$2a$08$hash")
}

func TestToTaskDTOs_Empty(t *testing.T) {
	body, err := json.Marshal(ToTaskDTOs(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
