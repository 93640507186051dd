package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var channelNameRegex = regexp.MustCompile(`^[a-zA-Z0-9 -]+$`)

func ValidateRegister(email, name, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Name is required")
	} else if len(name) > 80 {
		errs.Add("name", "Name must be at most 80 characters")
	}

	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(email) == "" {
		errs.Add("email", "Email is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateWorkspaceName(name string) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if len(name) < 3 {
		errs.Add("name", "Workspace name must be at least 3 characters")
	} else if len(name) > 80 {
		errs.Add("name", "Workspace name must be at most 80 characters")
	}

	return errs
}

func ValidateChannelName(name string) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if len(name) < 3 {
		errs.Add("name", "Channel name must be at least 3 characters")
	} else if len(name) > 80 {
		errs.Add("name", "Channel name must be at most 80 characters")
	} else if !channelNameRegex.MatchString(name) {
		errs.Add("name", "Channel name can only contain letters, numbers, spaces and dashes")
	}

	return errs
}

func ValidateMessageBody(body string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(body) == "" {
		errs.Add("body", "Message body is required")
	}

	return errs
}

func ValidateReactionValue(value string) ValidationErrors {
	errs := make(ValidationErrors)

	if value == "" {
		errs.Add("value", "Reaction value is required")
	} else if len(value) > 32 {
		errs.Add("value", "Reaction value is too long")
	}

	return errs
}
