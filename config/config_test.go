package config

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins(""))
	assert.Equal(t, []string{"https://app.vzo-kneginec.hr"}, splitOrigins("https://app.vzo-kneginec.hr"))
	assert.Equal(t,
		[]string{"https://a.example.com", "https://b.example.com"},
		splitOrigins("https://a.example.com, https://b.example.com"))
	assert.Equal(t, []string{"https://a.example.com"}, splitOrigins("https://a.example.com,,"))
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("something failed", 404, rr, errors.New("boom"))

	assert.Equal(t, 404, rr.Code)

	var resp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "something failed", resp.Response.Message)
	assert.Equal(t, "boom", resp.Response.Error)
}

func TestErrorStatusNilError(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("forbidden", 403, rr, nil)

	assert.Equal(t, 403, rr.Code)

	var resp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "forbidden", resp.Response.Message)
	assert.Empty(t, resp.Response.Error)
}
