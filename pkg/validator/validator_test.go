package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	assert.False(t, ValidateRegister("alice@example.com", "Alice", "longenough").HasErrors())

	errs := ValidateRegister("", "", "short")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "password")

	errs = ValidateRegister("not-an-email", "Alice", "longenough")
	assert.Contains(t, errs, "email")
}

func TestValidateWorkspaceName(t *testing.T) {
	assert.False(t, ValidateWorkspaceName("Acme").HasErrors())
	assert.True(t, ValidateWorkspaceName("ab").HasErrors())
	assert.True(t, ValidateWorkspaceName(strings.Repeat("x", 81)).HasErrors())
}

func TestValidateChannelName(t *testing.T) {
	assert.False(t, ValidateChannelName("Team Updates").HasErrors())
	assert.True(t, ValidateChannelName("no").HasErrors())
	assert.True(t, ValidateChannelName("bad!name").HasErrors())
}

func TestValidateMessageBody(t *testing.T) {
	assert.False(t, ValidateMessageBody("hi").HasErrors())
	assert.True(t, ValidateMessageBody("   ").HasErrors())
}

func TestValidateReactionValue(t *testing.T) {
	assert.False(t, ValidateReactionValue("👍").HasErrors())
	assert.True(t, ValidateReactionValue("").HasErrors())
	assert.True(t, ValidateReactionValue(strings.Repeat("👍", 10)).HasErrors())
}
