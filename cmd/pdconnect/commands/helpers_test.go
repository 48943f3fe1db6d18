package commands

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedream-labs/connect-go/internal/constants"
)

func TestParseJSONProps(t *testing.T) {
	t.Parallel()

	props, err := parseJSONProps(`{"channel": "#general", "limit": 5}`)
	require.NoError(t, err)
	assert.Equal(t, "#general", props["channel"])
	assert.Equal(t, float64(5), props["limit"])

	props, err = parseJSONProps("")
	require.NoError(t, err)
	assert.Empty(t, props)

	_, err = parseJSONProps("{not json")
	assert.ErrorIs(t, err, constants.ErrPropsNotJSON)

	_, err = parseJSONProps(`["not", "an", "object"]`)
	assert.ErrorIs(t, err, constants.ErrPropsNotJSON)
}

func TestFormatUnix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NotAvailable, formatUnix(0))
	assert.Equal(t, "2023-11-14T22:13:20Z", formatUnix(1700000000))
}

func TestBoolString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "yes", boolString(true))
	assert.Equal(t, "no", boolString(false))
}

func TestRenderStructured_UnknownFormat(t *testing.T) {
	viper.Set("output", "csv")

	defer viper.Set("output", OutputFormatTable)

	handled, err := renderStructured(map[string]string{"key": "value"})
	assert.True(t, handled)
	assert.ErrorIs(t, err, constants.ErrUnknownOutputFormat)
}

func TestValidEnvironment(t *testing.T) {
	t.Parallel()

	assert.True(t, validEnvironment("development"))
	assert.True(t, validEnvironment("production"))
	assert.False(t, validEnvironment("staging"))
	assert.False(t, validEnvironment(""))
}
