package cli

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

const (
	emailDomain       = "@gmail.com"
	minFullNameLength = 2
	minEmailLength    = 4
	minPasswordLength = 6
)

// signupForm is the registration form after trimming. Username is lowercased.
type signupForm struct {
	FullName  string
	Username  string
	Email     string
	Password  string
	Structure string
}

func (f *signupForm) normalize() {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Username = strings.ToLower(strings.TrimSpace(f.Username))
	f.Email = strings.TrimSpace(f.Email)
	f.Password = strings.TrimSpace(f.Password)
	f.Structure = strings.TrimSpace(f.Structure)
}

// validate returns the first problem with the form, worded for the user.
func (f *signupForm) validate() error {
	switch {
	case f.FullName == "":
		return errors.New("Please enter your full name")
	case utf8.RuneCountInString(f.FullName) < minFullNameLength:
		return errors.New("Full name must be at least 2 characters long")
	case f.Username == "":
		return errors.New("Please enter a username")
	case strings.ContainsAny(f.Username, " \t"):
		return errors.New("Username cannot contain spaces")
	case !usernamePattern.MatchString(f.Username):
		return errors.New("Username can only contain lowercase letters, numbers and underscores")
	}
	if err := validateCredentials(f.Email, f.Password); err != nil {
		return err
	}
	if f.Structure == "" {
		return errors.New("Please select your campus")
	}
	return nil
}

// validateCredentials applies the email and password rules shared by the
// login and signup forms. Both values must already be trimmed.
func validateCredentials(email, password string) error {
	switch {
	case email == "":
		return errors.New("Fill In Your Email")
	case !strings.Contains(email, emailDomain):
		return errors.New("Please enter a valid email address")
	case len(email) < minEmailLength:
		return errors.New("Email must be at least 4 characters long")
	case password == "":
		return errors.New("Fill In Your Password")
	case utf8.RuneCountInString(password) < minPasswordLength:
		return errors.New("Password must be at least 6 characters long")
	}
	return nil
}
