package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/racecal/models"
)

func raceIDs(t *testing.T, body []byte) []int {
	t.Helper()
	var races []models.Race
	require.NoError(t, json.Unmarshal(body, &races))
	ids := make([]int, 0, len(races))
	for _, r := range races {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRaces(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"no filters", "", []int{1, 2, 3}},
		{"discipline case-insensitive", "?discipline=trail", []int{2}},
		{"province", "?province=mendoza", []int{3}},
		{"start bound inclusive", "?startDate=2025-03-15", []int{2, 3}},
		{"end bound covers whole day", "?endDate=2025-03-15", []int{1, 2}},
		{"window", "?startDate=2025-03-01&endDate=2025-03-31", []int{1, 2}},
		{"rfc3339 bound", "?startDate=2025-03-02T00:00:01Z", []int{2, 3}},
		{"no match", "?discipline=Kayak", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeSource{races: sampleRaces()}, &fakeStore{})
			c, rec := request(http.MethodGet, "/api/races"+tt.query, "")

			require.NoError(t, h.Races(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, raceIDs(t, rec.Body.Bytes()))
		})
	}
}

func TestRaces_BadDate(t *testing.T) {
	h := newTestHandler(&fakeSource{races: sampleRaces()}, &fakeStore{})
	for _, q := range []string{"?startDate=yesterday", "?endDate=15/03/2025"} {
		c, _ := request(http.MethodGet, "/api/races"+q, "")
		assert.Equal(t, http.StatusBadRequest, httpStatus(t, h.Races(c)), q)
	}
}

func TestRaces_SourceError(t *testing.T) {
	h := newTestHandler(&fakeSource{err: errors.New("sheet down")}, &fakeStore{})
	c, _ := request(http.MethodGet, "/api/races", "")

	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, h.Races(c)))
}

func TestRace(t *testing.T) {
	h := newTestHandler(&fakeSource{races: sampleRaces()}, &fakeStore{})

	c, rec := request(http.MethodGet, "/api/races/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.Race(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.Race
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Trail Peñarol", got.Name)

	c, _ = request(http.MethodGet, "/api/races/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, h.Race(c)))

	c, _ = request(http.MethodGet, "/api/races/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, h.Race(c)))
}
