package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "whisperd/internal/app/api/whisper_server"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))
	assert.Contains(t, out.String(), "whisperd v0.1.0")
	assert.Contains(t, out.String(), "whisper_server")
}
