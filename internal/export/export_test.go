package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aelto/cahirp/internal/recipe"
)

func TestExpandWithholdsExporters(t *testing.T) {
	exporter := recipe.Directive{
		Params: recipe.Params{
			{Kind: recipe.KindFile, Value: "c.ws"},
			{Kind: recipe.KindAt, Value: "marker"},
			{Kind: recipe.KindExport, Value: "here"},
		},
	}
	importer := recipe.Directive{
		Code:   "body",
		Params: recipe.Params{{Kind: recipe.KindUse, Value: "here"}},
	}

	out := Expand([]recipe.Directive{exporter, importer})

	require := assert.New(t)
	require.Len(out, 1)
	require.Equal("body", out[0].Code)
	require.Equal(recipe.Params{
		{Kind: recipe.KindFile, Value: "c.ws"},
		{Kind: recipe.KindAt, Value: "marker"},
	}, out[0].Params)
}

func TestExpandPreservesSurroundingParams(t *testing.T) {
	exporter := recipe.Directive{
		Params: recipe.Params{{Kind: recipe.KindAt, Value: "m"}, {Kind: recipe.KindExport, Value: "k"}},
	}
	importer := recipe.Directive{
		Params: recipe.Params{
			{Kind: recipe.KindFile, Value: "x.ws"},
			{Kind: recipe.KindUse, Value: "k"},
			{Kind: recipe.KindDefine, Value: "done"},
		},
	}

	out := Expand([]recipe.Directive{exporter, importer})

	assert.Equal(t, recipe.Params{
		{Kind: recipe.KindFile, Value: "x.ws"},
		{Kind: recipe.KindAt, Value: "m"},
		{Kind: recipe.KindDefine, Value: "done"},
	}, out[0].Params)
}

func TestExpandFirstExporterWinsOnKeyCollision(t *testing.T) {
	first := recipe.Directive{Params: recipe.Params{{Kind: recipe.KindAt, Value: "first"}, {Kind: recipe.KindExport, Value: "k"}}}
	second := recipe.Directive{Params: recipe.Params{{Kind: recipe.KindAt, Value: "second"}, {Kind: recipe.KindExport, Value: "k"}}}
	importer := recipe.Directive{Params: recipe.Params{{Kind: recipe.KindUse, Value: "k"}}}

	out := Expand([]recipe.Directive{first, second, importer})

	assert.Equal(t, "first", out[0].Params[0].Value)
}

func TestExpandUnresolvedUseIsDroppedSilently(t *testing.T) {
	importer := recipe.Directive{Params: recipe.Params{{Kind: recipe.KindUse, Value: "ghost"}}}

	out := Expand([]recipe.Directive{importer})

	assert.Empty(t, out[0].Params)
}

func TestExpandIsIdempotent(t *testing.T) {
	exporter := recipe.Directive{Params: recipe.Params{{Kind: recipe.KindAt, Value: "m"}, {Kind: recipe.KindExport, Value: "k"}}}
	importer := recipe.Directive{Params: recipe.Params{{Kind: recipe.KindUse, Value: "k"}}}

	once := Expand([]recipe.Directive{exporter, importer})
	twice := Expand(once)

	assert.Equal(t, once, twice)
}

func TestUnresolvedUsesReportsDanglingKey(t *testing.T) {
	importer := recipe.Directive{Params: recipe.Params{{Kind: recipe.KindUse, Value: "ghost"}}}

	got := UnresolvedUses([]recipe.Directive{importer})

	require := assert.New(t)
	require.Len(got, 1)
	require.Equal("ghost", got[0].Key)
}
