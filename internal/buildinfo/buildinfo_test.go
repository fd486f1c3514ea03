package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	var buf bytes.Buffer
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())

	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.3"

	buf.Reset()
	PrintBuildData(&buf)
	assert.Contains(t, buf.String(), "Build version: v1.2.3\n")
}
