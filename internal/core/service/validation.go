package service

import (
	"fmt"
	"unicode"

	"github.com/microblog/user-service/internal/core/ports"
)

const (
	usernameMinLen    = 4
	usernameMaxLen    = 255
	displayNameMinLen = 4
	displayNameMaxLen = 255
	passwordMinLen    = 8
	passwordMaxLen    = 255
)

const (
	msgUsernameNull  = "Username cannot be null"
	msgNull          = "Cannot be null"
	msgUsernameTaken = "This name is in use"
	// The wording predates the current rule: only a lowercase letter and a
	// digit are actually required. Kept verbatim because clients match on it.
	msgPasswordPattern = "Password must have at least one uppercase, one lowercase letter and one number"
)

func sizeMessage(min, max int) string {
	return fmt.Sprintf("It must have minimum %d and maximum %d characters", min, max)
}

// validateSignup checks a signup candidate field by field and returns a
// message per failing field, empty when everything passes. Rules per field
// run in order and stop at the first failure, so a null or undersized
// username never reaches the uniqueness lookup.
//
// usernameTaken is injected rather than a repository dependency so the rules
// stay evaluable without a store.
func validateSignup(in ports.SignupInput, usernameTaken func(string) bool) map[string]string {
	errs := make(map[string]string)

	switch {
	case in.Username == nil:
		errs["username"] = msgUsernameNull
	case len(*in.Username) < usernameMinLen || len(*in.Username) > usernameMaxLen:
		errs["username"] = sizeMessage(usernameMinLen, usernameMaxLen)
	case usernameTaken(*in.Username):
		errs["username"] = msgUsernameTaken
	}

	switch {
	case in.DisplayName == nil:
		errs["displayName"] = msgNull
	case len(*in.DisplayName) < displayNameMinLen || len(*in.DisplayName) > displayNameMaxLen:
		errs["displayName"] = sizeMessage(displayNameMinLen, displayNameMaxLen)
	}

	switch {
	case in.Password == nil:
		errs["password"] = msgNull
	case len(*in.Password) < passwordMinLen || len(*in.Password) > passwordMaxLen:
		errs["password"] = sizeMessage(passwordMinLen, passwordMaxLen)
	case !hasLowerAndDigit(*in.Password):
		errs["password"] = msgPasswordPattern
	}

	return errs
}

func hasLowerAndDigit(s string) bool {
	var lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
		if lower && digit {
			return true
		}
	}
	return false
}
