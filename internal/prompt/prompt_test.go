package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose_DefaultWhenEmpty(t *testing.T) {
	got := Compose("")
	assert.True(t, strings.HasPrefix(got, Default))
	assert.True(t, strings.HasSuffix(got, EnforcementAppendix))
}

func TestCompose_OverrideKeepsAppendix(t *testing.T) {
	got := Compose("Describe this image briefly.")
	assert.True(t, strings.HasPrefix(got, "Describe this image briefly."))
	assert.Contains(t, got, EnforcementAppendix)
	assert.NotContains(t, got, Default[:40])
}

func TestCompose_WhitespaceOnlyTreatedAsEmpty(t *testing.T) {
	assert.Equal(t, Compose(""), Compose("   \n\t"))
}
