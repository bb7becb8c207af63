package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsMarshal(t *testing.T) {
	t.Parallel()

	t.Run("ZeroValueIsNull", func(t *testing.T) {
		var s Settings
		assert.True(t, s.IsNull())
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})

	t.Run("RawTextIsString", func(t *testing.T) {
		data, err := json.Marshal(RawSettings(" Paris, France  (France) "))
		require.NoError(t, err)
		assert.Equal(t, `" Paris, France  (France) "`, string(data))
	})

	t.Run("RectifiedIsArray", func(t *testing.T) {
		data, err := json.Marshal(PlaceSettings([]string{"France", "Italy"}))
		require.NoError(t, err)
		assert.Equal(t, `["France","Italy"]`, string(data))
	})

	t.Run("RectifiedNilIsEmptyArray", func(t *testing.T) {
		data, err := json.Marshal(PlaceSettings(nil))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})
}

func TestSettingsUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("Null", func(t *testing.T) {
		var s Settings
		require.NoError(t, json.Unmarshal([]byte(`null`), &s))
		assert.True(t, s.IsNull())
		assert.False(t, s.Rectified())
	})

	t.Run("String", func(t *testing.T) {
		var s Settings
		require.NoError(t, json.Unmarshal([]byte(`"Wessex, England"`), &s))
		require.NotNil(t, s.Text)
		assert.Equal(t, "Wessex, England", *s.Text)
		assert.False(t, s.Rectified())
	})

	t.Run("Array", func(t *testing.T) {
		var s Settings
		require.NoError(t, json.Unmarshal([]byte(`["England"]`), &s))
		assert.True(t, s.Rectified())
		assert.Equal(t, []string{"England"}, s.Places)
	})

	t.Run("ReplacesPriorValue", func(t *testing.T) {
		s := RawSettings("stale")
		require.NoError(t, json.Unmarshal([]byte(`null`), &s))
		assert.True(t, s.IsNull())
	})
}
