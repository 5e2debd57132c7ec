package contracts

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionStrings(t *testing.T) {
	assert.Equal(t, "lookupfill (sheetcli) v"+Version, GetVersionString("lookupfill"))

	full := GetFullVersionString("splitsheet")
	assert.True(t, strings.HasPrefix(full, GetVersionString("splitsheet")))
	assert.Contains(t, full, runtime.Version())

	info := GetVersionInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.False(t, IsPrerelease())
}
