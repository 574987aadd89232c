package input_test

import (
	"context"
	"strings"
	"testing"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/internal/input"
	"github.com/katalvlaran/sparsetot/tot"
	"github.com/stretchr/testify/require"
)

const buildDoc = `
tensor:
  ind_rank: 1
  dep_rank: 1
  elements:
    - {coord: [0, 0], value: 1}
    - {coord: [0, 1], value: 2}
    - {coord: [1, 1], value: 3}
workers: 2
`

func TestLoadBuildDerivedMap(t *testing.T) {
	doc, err := input.LoadBuild(strings.NewReader(buildDoc))
	require.NoError(t, err)
	require.Equal(t, 2, doc.Workers)

	src, err := doc.Source()
	require.NoError(t, err)
	require.Equal(t, 3, src.Len())

	sm, err := doc.Map(src)
	require.NoError(t, err)
	require.Equal(t, "{(0) : {(0), (1)}, (1) : {(1)}}", sm.String())

	got, err := tot.Build(context.Background(), sm, src, doc.Options()...)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	v, err := got.Element(index.Of(1), index.Of(1))
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
}

func TestLoadBuildExplicitMapAndModeMap(t *testing.T) {
	const doc = `
tensor:
  ind_rank: 2
  dep_rank: 1
  elements:
    - {coord: [4, 9, 2], value: 5}
sparse_map:
  - {ind: [9], dep: [[4, 2]]}
mode_map: {0: 1}
`
	d, err := input.LoadBuild(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, map[int]int{0: 1}, d.ModeMap)

	src, err := d.Source()
	require.NoError(t, err)
	sm, err := d.Map(src)
	require.NoError(t, err)
	require.Equal(t, "{(9) : {(4, 2)}}", sm.String())

	got, err := tot.Build(context.Background(), sm, src, d.Options()...)
	require.NoError(t, err)
	v, err := got.Element(index.Of(9), index.Of(4, 2))
	require.NoError(t, err)
	require.Equal(t, 5.0, v)
}

func TestLoadBuildRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": `
tensor: {ind_rank: 1, dep_rank: 1}
colour: red
`,
		"coord rank": `
tensor:
  ind_rank: 1
  dep_rank: 1
  elements:
    - {coord: [0], value: 1}
`,
		"negative coord": `
tensor:
  ind_rank: 1
  dep_rank: 0
  elements:
    - {coord: [-1], value: 1}
`,
		"negative rank": `
tensor: {ind_rank: -1, dep_rank: 1}
`,
		"empty dep": `
tensor: {ind_rank: 1, dep_rank: 1}
sparse_map:
  - {ind: [0], dep: []}
`,
		"negative mode map": `
tensor: {ind_rank: 1, dep_rank: 1}
mode_map: {0: -2}
`,
		"negative workers": `
tensor: {ind_rank: 1, dep_rank: 1}
workers: -1
`,
		"malformed yaml": "tensor: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := input.LoadBuild(strings.NewReader(doc))
			require.ErrorIs(t, err, input.ErrInvalid)
		})
	}
}

func TestSourceDuplicateCoordinate(t *testing.T) {
	const doc = `
tensor:
  ind_rank: 1
  dep_rank: 1
  elements:
    - {coord: [0, 0], value: 1}
    - {coord: [0, 0], value: 2}
`
	d, err := input.LoadBuild(strings.NewReader(doc))
	require.NoError(t, err)
	_, err = d.Source()
	require.Error(t, err)
}

func TestLoadMaps(t *testing.T) {
	const doc = `
maps:
  - [{ind: [0], dep: [[0], [1]]}, {ind: [1], dep: [[1]]}]
  - [{ind: [0], dep: [[7]]}, {ind: [1], dep: [[8]]}]
`
	m, err := input.LoadMaps(strings.NewReader(doc))
	require.NoError(t, err)
	sms, err := m.SparseMaps()
	require.NoError(t, err)
	require.Len(t, sms, 2)

	c, err := sms[0].Compose(sms[1])
	require.NoError(t, err)
	require.Equal(t, "{(0) : {(7), (8)}, (1) : {(8)}}", c.String())
}

func TestLoadMapsRejects(t *testing.T) {
	_, err := input.LoadMaps(strings.NewReader("maps: []\n"))
	require.ErrorIs(t, err, input.ErrInvalid)

	m, err := input.LoadMaps(strings.NewReader(`
maps:
  - [{ind: [0], dep: [[1]]}, {ind: [0, 1], dep: [[1]]}]
`))
	require.NoError(t, err)
	_, err = m.SparseMaps()
	require.ErrorIs(t, err, index.ErrRankMismatch)
}
