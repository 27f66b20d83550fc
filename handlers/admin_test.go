package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/padraicbc/racecal/middleware"
	"github.com/padraicbc/racecal/models"
)

func TestImport(t *testing.T) {
	src := &fakeSource{races: sampleRaces()}
	store := &fakeStore{}
	h := newTestHandler(src, store)

	c, rec := request(http.MethodPost, "/api/admin/import", "")
	c.Set(mw.UsernameKey, "ana")

	require.NoError(t, h.Import(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, src.refreshed)
	assert.Equal(t, h.SheetURL, store.source)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/export?format=csv&gid=42", store.export)
	assert.Len(t, store.saved, 3)

	var imp models.Import
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &imp))
	assert.Equal(t, int64(7), imp.ID)
	assert.Equal(t, 3, imp.RaceCount)
}

func TestImport_Failures(t *testing.T) {
	h := newTestHandler(&fakeSource{err: errors.New("sheet down")}, &fakeStore{})
	c, _ := request(http.MethodPost, "/api/admin/import", "")
	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, h.Import(c)))

	store := &fakeStore{saveErr: errors.New("db down")}
	h = newTestHandler(&fakeSource{races: sampleRaces()}, store)
	c, _ = request(http.MethodPost, "/api/admin/import", "")
	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, h.Import(c)))

	h = newTestHandler(&fakeSource{races: sampleRaces()}, &fakeStore{})
	h.SheetURL = "not a sheet"
	c, _ = request(http.MethodPost, "/api/admin/import", "")
	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, h.Import(c)))
}
