package core

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProtocolError_MatchesByKind(t *testing.T) {
	err := NewConnectionError("dial", "http://example.com", errors.New("refused"))
	assert.True(t, IsProtocolError(err))
	assert.True(t, IsProtocolError(err, ConnectionErr))
	assert.False(t, IsProtocolError(err, IoErr))
}

func TestIsProtocolError_FalseForOtherErrorTypes(t *testing.T) {
	assert.False(t, IsProtocolError(errors.New("plain")))
}

func TestProtocolError_UnwrapReachesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := NewIoError("read", "", cause)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPError_PromotesValidUTF8BytesToText(t *testing.T) {
	resp := InMemoryResponse{StatusCode: 500, Body: BytesBody([]byte("server exploded"))}
	herr := NewHTTPError(resp)
	assert.Equal(t, 500, herr.StatusCode)
	text, err := herr.Response.Body.Text()
	assert.NoError(t, err)
	assert.Equal(t, "server exploded", text)
}

func TestHTTPError_LeavesNonUTF8BytesAsBytes(t *testing.T) {
	resp := InMemoryResponse{StatusCode: 500, Body: BytesBody([]byte{0xff, 0xfe})}
	herr := NewHTTPError(resp)
	b, err := herr.Response.Body.Bytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xfe}, b)
}

func TestIsHTTPError(t *testing.T) {
	resp := InMemoryResponse{StatusCode: 404}
	herr := NewHTTPError(resp)
	assert.True(t, IsHTTPError(herr))
	assert.False(t, IsHTTPError(errors.New("plain")))
}

func TestHTTPError_IsMatchesStatusOrWildcard(t *testing.T) {
	herr := &HTTPError{StatusCode: 404, Status: http.StatusText(404)}
	assert.True(t, herr.Is(&HTTPError{StatusCode: 404}))
	assert.False(t, herr.Is(&HTTPError{StatusCode: 500}))
	assert.True(t, herr.Is(&HTTPError{StatusCode: 0}), "a zero StatusCode target acts as a wildcard match")
}

func TestProtocolErrorKind_String(t *testing.T) {
	assert.Equal(t, "connection", ConnectionErr.String())
	assert.Equal(t, "too_many_retries", TooManyRetries.String())
}
