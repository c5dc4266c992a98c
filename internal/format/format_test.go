// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/film-aggregator/internal/pipeline"
	"github.com/pdiddy/film-aggregator/pkg/types"
)

func sampleOutput() pipeline.Output {
	return pipeline.Output{
		RunID: "run-1",
		Films: []types.Film{
			{
				ID: "1", Title: "Meu Amigo Totoro", ReleaseDate: "1988", RunningTime: "86",
				Genre: "Animação - Família", Popularity: 42.5,
				PosterImage: bytes.Repeat([]byte("p"), 2048), BannerImage: []byte("bb"),
			},
		},
		Skipped:  []types.Skip{{ID: "2", Title: "Laputa"}},
		Expected: 1,
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(sampleOutput(), &buf)
	out := buf.String()

	assert.Contains(t, out, "Meu Amigo Totoro")
	assert.Contains(t, out, "Animação - Família")
	assert.Contains(t, out, "2.0KB / 2B")
	assert.Contains(t, out, "1 films (1 without a TMDB match)")
	assert.Contains(t, out, "skipped: Laputa (2)")
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	Table(pipeline.Output{}, &buf)
	assert.Equal(t, "No films found.\n", buf.String())
}

func TestJSONOmitsImagesByDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(sampleOutput(), Options{}, &buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	films := got["films"].([]any)
	require.Len(t, films, 1)
	film := films[0].(map[string]any)

	assert.Equal(t, "run-1", got["run_id"])
	assert.Equal(t, float64(2048), film["poster_bytes"])
	assert.NotContains(t, film, "poster_image")
}

func TestJSONIncludeImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(sampleOutput(), Options{IncludeImages: true}, &buf))
	assert.Contains(t, buf.String(), `"banner_image": "YmI="`)
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(sampleOutput(), Options{}, &buf))

	var got outputView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Films, 1)
	assert.Equal(t, "Animação - Família", got.Films[0].Genre)
	assert.Equal(t, []types.Skip{{ID: "2", Title: "Laputa"}}, got.Skipped)
	assert.False(t, strings.Contains(buf.String(), "poster_image"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Kiki's ...", truncate("Kiki's Delivery Service", 10))
	assert.Equal(t, "となりの...", truncate("となりのトトロの森", 7))
}
