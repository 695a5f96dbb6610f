package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserExtra_IDStrings(t *testing.T) {
	var draft UserExtra
	assert.Equal(t, "", draft.IDString())
	assert.Equal(t, "", draft.UserIDString())

	e := UserExtra{ID: Int64(42), User: &UserRef{ID: 7}}
	assert.Equal(t, "42", e.IDString())
	assert.Equal(t, "7", e.UserIDString())
}

func TestUserExtra_JSONShape(t *testing.T) {
	raw := `{"id":42,"frontImage":"a.png","backImage":null,"user":{"id":7}}`

	var e UserExtra
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	require.NotNil(t, e.ID)
	assert.Equal(t, int64(42), *e.ID)
	assert.Equal(t, "a.png", Deref(e.FrontImage))
	assert.Nil(t, e.BackImage)
	assert.Equal(t, int64(7), e.User.ID)
}
