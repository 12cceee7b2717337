package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
}

func TestValidateStructOK(t *testing.T) {
	form := signUpForm{
		Email:    "grad@university.edu",
		Password: "longenough",
		Name:     "Ada",
		Website:  "https://university.edu",
	}
	assert.NoError(t, ValidateStruct(&form))
	assert.Nil(t, FieldMessages(ValidateStruct(&form)))
}

func TestFieldMessagesUseJSONTagNames(t *testing.T) {
	form := signUpForm{Email: "not-an-email", Password: "short", Website: "not a url"}

	messages := FieldMessages(ValidateStruct(&form))
	require.NotNil(t, messages)
	assert.Equal(t, "Please enter a valid email address.", messages["email"])
	assert.Equal(t, "Must be at least 8 characters.", messages["password"])
	assert.Equal(t, "This field is required.", messages["name"])
	assert.Equal(t, "Please enter a valid URL.", messages["website"])

	// Go struct field names never leak into the messages.
	assert.NotContains(t, messages, "Email")
	assert.NotContains(t, messages, "Password")
}

func TestValidateStructRejectsNonStructs(t *testing.T) {
	assert.Error(t, ValidateStruct("not a struct"))
	assert.NoError(t, ValidateStruct(nil))
}

func TestFieldMessagesNonValidationError(t *testing.T) {
	assert.Nil(t, FieldMessages(assert.AnError))
	assert.Nil(t, FieldMessages(nil))
}
