package encoding

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJSON_ReturnsCopy(t *testing.T) {
	first, err := EncodeJSON(map[string]string{"issuer": "Visa"})
	require.NoError(t, err)

	// reuse the pool; the first result must be unaffected
	_, err = EncodeJSON(map[string]string{"issuer": "Mastercard"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"issuer":"Visa"}`, string(first))
}

func TestEncodeJSON_Unsupported(t *testing.T) {
	_, err := EncodeJSON(make(chan int))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteJSON(w, http.StatusCreated, map[string]bool{"success": true}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()

	assert.Error(t, WriteJSON(w, http.StatusOK, make(chan int)))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPutBuffer_DropsLargeBuffers(t *testing.T) {
	big := bytes.NewBuffer(make([]byte, 0, maxPooledBuffer+1))
	assert.NotPanics(t, func() { PutBuffer(big) })
	assert.Equal(t, 0, GetBuffer().Len())
}
