package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginMasksPassword(t *testing.T) {
	expectedMap := map[string]string{"email": "email", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "email", Password: "password"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "password", loginReq.Password)
}

func TestRegisterMasksPassword(t *testing.T) {
	registerReq := Register{Name: "Jane", Email: "jane@example.com", Password: "hunter2"}

	actual, err := json.Marshal(registerReq)

	assert.NoError(t, err)
	assert.Contains(t, string(actual), `"password":"***"`)
	assert.NotContains(t, string(actual), "hunter2")
	assert.EqualValues(t, "hunter2", registerReq.Password)
}

func TestUpdateUserMasksPasswordOnlyWhenSet(t *testing.T) {
	withPassword, _ := json.Marshal(UpdateUser{Name: "Jane", Email: "jane@example.com", Password: "hunter2"})
	assert.Contains(t, string(withPassword), `"password":"***"`)

	withoutPassword, _ := json.Marshal(UpdateUser{Name: "Jane", Email: "jane@example.com"})
	assert.Contains(t, string(withoutPassword), `"password":""`)
}
