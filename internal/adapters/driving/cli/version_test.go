package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd(t *testing.T) {
	out, err := executeCommand("version")

	assert.NoError(t, err)
	assert.Contains(t, out, "vaultkeeper version")
}
