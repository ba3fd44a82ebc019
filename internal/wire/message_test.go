package wire

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAppLoaded(t *testing.T) {
	msg, err := Decode([]byte(`{"MessageId":"App_LoadingStatus"}`))
	require.NoError(t, err)
	assert.Equal(t, KindAppLoaded, msg.Kind)
	assert.Empty(t, msg.NewName)
}

func TestDecodeFileRename(t *testing.T) {
	msg, err := Decode([]byte(`{"MessageId":"File_Rename","Values":{"NewName":"Report"}}`))
	require.NoError(t, err)
	assert.Equal(t, KindFileRename, msg.Kind)
	assert.Equal(t, "Report", msg.NewName)
}

func TestDecodeUnknownMessageID(t *testing.T) {
	// Unknown tags are part of the contract: ignored, never an error.
	for _, raw := range []string{
		`{"MessageId":"UI_Sharing"}`,
		`{"MessageId":""}`,
		`{"Values":{"NewName":"x"}}`,
	} {
		msg, err := Decode([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, KindUnknown, msg.Kind, raw)
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	_, err := Decode([]byte(`{"MessageId":`))
	assert.Error(t, err)
}

func TestReadyMessageShape(t *testing.T) {
	sentAt := time.UnixMilli(1700000000123)
	payload, err := NewReady(sentAt).Encode()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, sonic.Unmarshal(payload, &decoded))

	assert.Equal(t, MsgHostReady, decoded["MessageId"])
	assert.EqualValues(t, 1700000000123, decoded["SendTime"])

	values, ok := decoded["Values"].(map[string]interface{})
	require.True(t, ok, "Values must be an object")
	assert.Empty(t, values)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "app_loaded", KindAppLoaded.String())
	assert.Equal(t, "file_rename", KindFileRename.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
