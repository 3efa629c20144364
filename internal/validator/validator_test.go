package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() UserRegistrationRequest {
	return UserRegistrationRequest{
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		Password:    "secret123",
		FullName:    "John Doe",
		PhoneNumber: "+5511999990000",
		TaxID:       "12345678901",
	}
}

func fieldRules(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	rules := make(map[string]string, len(verrs))
	for _, ve := range verrs {
		rules[ve.Field] = ve.Rule
	}
	return rules
}

func TestValidateRegistration(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(validRegistration()))
}

func TestValidateRegistration_ShortUsername(t *testing.T) {
	v := New()

	req := validRegistration()
	req.Username = "jd"

	rules := fieldRules(t, v.Validate(req))
	assert.Equal(t, "min", rules["Username"])
}

func TestValidateRegistration_UsernameCharset(t *testing.T) {
	v := New()

	valid := []string{"john.doe", "john-doe", "john_doe", "JDoe2025"}
	for _, username := range valid {
		req := validRegistration()
		req.Username = username
		assert.NoError(t, v.Validate(req), "username %q should be accepted", username)
	}

	invalid := []string{"john doe", "john@doe", "joão"}
	for _, username := range invalid {
		req := validRegistration()
		req.Username = username
		rules := fieldRules(t, v.Validate(req))
		assert.Equal(t, "username", rules["Username"], "username %q should be rejected", username)
	}
}

func TestValidateRegistration_BadEmail(t *testing.T) {
	v := New()

	req := validRegistration()
	req.Email = "not-an-email"

	rules := fieldRules(t, v.Validate(req))
	assert.Equal(t, "email", rules["Email"])
}

func TestValidateRegistration_PasswordBounds(t *testing.T) {
	v := New()

	req := validRegistration()
	req.Password = "12345"
	rules := fieldRules(t, v.Validate(req))
	assert.Equal(t, "min", rules["Password"])

	req.Password = "123456789012345678901"
	rules = fieldRules(t, v.Validate(req))
	assert.Equal(t, "max", rules["Password"])
}

func TestValidateRegistration_MissingFields(t *testing.T) {
	v := New()

	rules := fieldRules(t, v.Validate(UserRegistrationRequest{}))
	for _, field := range []string{"Username", "Email", "Password"} {
		assert.Equal(t, "required", rules[field], "field %s", field)
	}
	// Optional profile fields do not fail when omitted
	assert.NotContains(t, rules, "FullName")
	assert.NotContains(t, rules, "PhoneNumber")
}

func TestValidateImageUpdate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(UserImageUpdateRequest{ImageURL: "https://cdn.example.com/a.png"}))

	rules := fieldRules(t, v.Validate(UserImageUpdateRequest{ImageURL: "not a url"}))
	assert.Equal(t, "url", rules["ImageURL"])
}

func TestValidationErrorsMessage(t *testing.T) {
	assert.Equal(t, "validation failed", ValidationErrors{}.Error())
	assert.Equal(t, "validation failed: Username is required",
		ValidationErrors{{Field: "Username", Message: "is required"}}.Error())
	assert.Equal(t, "validation failed: 2 field errors",
		ValidationErrors{{Field: "Username"}, {Field: "Email"}}.Error())
}
