package opine_test

import (
	"net/http"
	"testing"

	"github.com/opine-io/opine-client/pkg/opine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourcePayload struct {
	Source opine.Source `json:"source"`
}

func TestDecode_Success(t *testing.T) {
	t.Parallel()

	body := []byte(`{"status": "ok", "source": {"id": "abc123", "owner": "acme", "name": "reviews"}}`)

	payload, err := opine.Decode[sourcePayload](body, http.StatusOK)
	require.NoError(t, err)
	assert.Equal(t, "abc123", payload.Source.ID)
	assert.Equal(t, "acme/reviews", payload.Source.FullName())
}

func TestDecode_ErrorEnvelopeOnFailingStatus(t *testing.T) {
	t.Parallel()

	body := []byte(`{"status": "error", "message": "source not found"}`)

	_, err := opine.Decode[sourcePayload](body, http.StatusNotFound)
	require.Error(t, err)

	apiErr := &opine.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "source not found", apiErr.Message)
	assert.True(t, opine.IsNotFound(err))
}

func TestDecode_SuccessEnvelopeOnFailingStatus(t *testing.T) {
	t.Parallel()

	// The envelope claims success but the HTTP status says otherwise.
	// Neither signal is trusted.
	body := []byte(`{"status": "ok", "source": {"id": "abc123"}}`)

	_, err := opine.Decode[sourcePayload](body, http.StatusInternalServerError)
	require.Error(t, err)

	protoErr := &opine.ProtocolError{}
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, http.StatusInternalServerError, protoErr.StatusCode)
	assert.Empty(t, protoErr.Message)
	assert.True(t, opine.IsProtocolMismatch(err))
}

func TestDecode_ErrorEnvelopeOnSuccessStatus(t *testing.T) {
	t.Parallel()

	body := []byte(`{"status": "error", "message": "internal inconsistency"}`)

	_, err := opine.Decode[sourcePayload](body, http.StatusOK)
	require.Error(t, err)

	protoErr := &opine.ProtocolError{}
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, http.StatusOK, protoErr.StatusCode)
	assert.Equal(t, "internal inconsistency", protoErr.Message)
}

func TestDecode_MalformedBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>502 Bad Gateway</html>`},
		{name: "empty body", body: ``},
		{name: "unknown status tag", body: `{"status": "maybe"}`},
		{name: "missing status tag", body: `{"source": {}}`},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := opine.Decode[sourcePayload]([]byte(testCase.body), http.StatusOK)
			require.ErrorIs(t, err, opine.ErrBadJSONResponse)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	t.Parallel()

	err := opine.DecodeEmpty([]byte(`{"status": "ok"}`), http.StatusOK)
	require.NoError(t, err)

	err = opine.DecodeEmpty([]byte(`{"status": "error", "message": "nope"}`), http.StatusForbidden)
	require.Error(t, err)
	assert.True(t, opine.IsForbidden(err))
}
