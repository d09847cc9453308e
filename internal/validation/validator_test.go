package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() SignupRequest {
	return SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "a@x.com",
		Password:  "Secret1",
		Role:      "admin",
	}
}

func TestValidate_SignupOK(t *testing.T) {
	v := New()
	req := validSignup()
	assert.NoError(t, v.Validate(&req))
}

func TestValidate_SignupFirstViolation(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		mutate func(*SignupRequest)
		want   string
	}{
		{"missing firstname", func(r *SignupRequest) { r.FirstName = "" }, `"firstname" is required`},
		{"bad email", func(r *SignupRequest) { r.Email = "nope" }, `"email" must be a valid email`},
		{"short password", func(r *SignupRequest) { r.Password = "abc" }, `"password" length must be at least 5 characters long`},
		{"password over 72 bytes", func(r *SignupRequest) { r.Password = strings.Repeat("p", 73) }, `"password" length must be less than or equal to 72 bytes long`},
		{"multibyte password over 72 bytes", func(r *SignupRequest) { r.Password = strings.Repeat("é", 40) }, `"password" length must be less than or equal to 72 bytes long`},
		{"long username", func(r *SignupRequest) { r.Username = strings.Repeat("u", 51) }, `"username" length must be less than or equal to 50 characters long`},
		{"missing role", func(r *SignupRequest) { r.Role = "" }, `"role" is required`},
		{"reports first field only", func(r *SignupRequest) { r.LastName = ""; r.Role = "" }, `"lastname" is required`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validSignup()
			tc.mutate(&req)

			err := v.Validate(&req)
			require.Error(t, err)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.want, verr.Message)
		})
	}
}

func TestValidate_Login(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&LoginRequest{Email: "a@x.com", Password: "x"}))

	err := v.Validate(&LoginRequest{Email: "a@x.com"})
	require.Error(t, err)
	assert.Equal(t, `"password" is required`, err.Error())
}

func TestValidate_UpdateAllOptional(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&UpdateRequest{}))
	assert.NoError(t, v.Validate(&UpdateRequest{FirstName: "Grace"}))

	err := v.Validate(&UpdateRequest{Password: "abc"})
	require.Error(t, err)
	assert.Equal(t, `"password" length must be at least 5 characters long`, err.Error())
}

func TestValidate_PasswordAtBcryptLimit(t *testing.T) {
	v := New()

	req := validSignup()
	req.Password = strings.Repeat("p", 72)
	assert.NoError(t, v.Validate(&req))

	err := v.Validate(&UpdateRequest{Password: strings.Repeat("p", 100)})
	require.Error(t, err)
	assert.Equal(t, `"password" length must be less than or equal to 72 bytes long`, err.Error())
}
