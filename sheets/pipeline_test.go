package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPipeline_GetRaces(t *testing.T) {
	t.Parallel()

	second := baseRow()
	second[ColID] = "18"
	second[ColName] = "Noche de Trail"
	second[ColDiscipline] = "Trail"
	second[ColDistance] = "21 & 42"

	body := strings.Join([]string{
		csvLine(map[int]string{ColName: "Carrera"}),
		csvLine(baseRow()),
		csvLine(second),
	}, "\n")

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/spreadsheets/d/abc/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := NewPipeline(NewRetriever(time.Second), newTestParser(nil))
	races, err := p.GetRaces(context.Background(), srv.URL+"/spreadsheets/d/abc/export?format=csv&gid=0")
	require.NoError(t, err)
	require.Len(t, races, 2)

	assert.Equal(t, 17, races[0].ID)
	assert.Equal(t, "Noche de Trail", races[1].Name)
	require.NotNil(t, races[1].Distance)
	assert.Equal(t, 21.0, *races[1].Distance)
	assert.EqualValues(t, 1, hits.Load())
}

func TestPipeline_GetRaces_InvalidURL(t *testing.T) {
	p := NewPipeline(NewRetriever(time.Second), newTestParser(nil))
	races, err := p.GetRaces(context.Background(), "https://example.com/not-a-sheet")
	assert.ErrorIs(t, err, ErrInvalidSourceURL)
	assert.Nil(t, races)
}

func TestPipeline_GetRaces_RetrievalFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewPipeline(NewRetriever(time.Second), newTestParser(nil))
	races, err := p.GetRaces(context.Background(), srv.URL+"/export?format=csv")
	assert.ErrorIs(t, err, ErrRetrievalFailed)
	assert.Nil(t, races)
}

func TestZapReporter(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := NewParser(WithLocation(time.UTC), WithReporter(ZapReporter(zap.New(core))))

	cells := baseRow()
	cells[ColStartDate] = "pronto"
	_, err := p.MapRow(sheetRow(cells), 5)
	require.Error(t, err)

	entries := logs.FilterMessage("unparseable startDate").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 5, fields["row"])
	assert.Equal(t, "pronto", fields["value"])
}
