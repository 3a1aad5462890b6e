package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	def, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, def, "# opentag")

	page, err := Get("addressing")
	require.NoError(t, err)
	assert.Contains(t, page, "--silent-copy")
	assert.Contains(t, page, "ot work docs --help")

	_, err = Get("nope")
	assert.Error(t, err)
}

func TestTopics(t *testing.T) {
	topics, err := Topics()
	require.NoError(t, err)
	assert.Equal(t, []Topic{
		{Name: "addressing", Title: "Addressing tags"},
		{Name: "config", Title: "Configuration"},
		{Name: "editing", Title: "Editing tags"},
	}, topics)
}
