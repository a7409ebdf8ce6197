package statsplit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FlatAndSingleSplitWrapperAreEquivalent(t *testing.T) {
	t.Parallel()

	split := `{"type":{"displayName":"season"},"group":{"displayName":"hitting"},"stat":{"hits":2}}`
	flat, err := Normalize([]byte(`[` + split + `]`))
	require.NoError(t, err)
	wrapped, err := Normalize([]byte(`[{"type":{"displayName":"season"},"group":{"displayName":"hitting"},"splits":[` + split + `]}]`))
	require.NoError(t, err)

	require.Equal(t, 1, flat.Len())
	require.Equal(t, 1, wrapped.Len())
	assert.Equal(t, flat.Records(), wrapped.Records())
}

func TestNormalize_WrapperGroupsSplitsByPairKeepingOrder(t *testing.T) {
	t.Parallel()

	raw := `[{
		"type": {"displayName": "byMonth"},
		"group": {"displayName": "hitting"},
		"splits": [
			{"month": 4, "stat": {"hits": 20}},
			{"month": 5, "stat": {"hits": 31}},
			{"type": "byDayOfWeek", "dayOfWeek": 1, "stat": {"hits": 7}},
			{"month": 6, "stat": {"hits": 25}}
		]
	}]`

	pool, err := Normalize([]byte(raw))
	require.NoError(t, err)

	records := pool.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "byMonth", records[0].Type)
	assert.Equal(t, GroupHitting, records[0].Group)
	require.Len(t, records[0].Values, 3)
	assert.JSONEq(t, `{"month": 4, "stat": {"hits": 20}}`, string(records[0].Values[0]))
	assert.JSONEq(t, `{"month": 5, "stat": {"hits": 31}}`, string(records[0].Values[1]))
	assert.JSONEq(t, `{"month": 6, "stat": {"hits": 25}}`, string(records[0].Values[2]))

	assert.Equal(t, "byDayOfWeek", records[1].Type)
	require.Len(t, records[1].Values, 1)
}

func TestNormalize_AcceptsPlainStringLabels(t *testing.T) {
	t.Parallel()

	pool, err := Normalize([]byte(`[{"type":"career","group":"pitching","stat":{"wins":10}}]`))
	require.NoError(t, err)
	assert.True(t, pool.Has("CAREER", GroupPitching))
	assert.False(t, pool.Has("career", GroupHitting))
}

func TestNormalize_MergesRepeatedPairsAcrossEntries(t *testing.T) {
	t.Parallel()

	raw := `[
		{"type":"season","group":"hitting","stat":{"hits":1}},
		{"type":"Season","group":"hitting","splits":[{"stat":{"hits":2}}]}
	]`
	pool, err := Normalize([]byte(raw))
	require.NoError(t, err)

	records := pool.Records()
	require.Len(t, records, 1)
	assert.Len(t, records[0].Values, 2)
}

func TestNormalize_EmptyWrapperProducesNoRecord(t *testing.T) {
	t.Parallel()

	pool, err := Normalize([]byte(`[{"type":"gameLog","group":"hitting","splits":[]}]`))
	require.NoError(t, err)
	assert.Equal(t, 0, pool.Len())
}

func TestNormalize_MalformedElementFailsWholeResponse(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not an array":        `{"type":"season"}`,
		"scalar element":      `[{"type":"season","group":"hitting","stat":{}}, 12]`,
		"no payload":          `[{"type":"season","group":"hitting"}]`,
		"no group":            `[{"type":"season","stat":{"hits":1}}]`,
		"split without label": `[{"splits":[{"stat":{"hits":1}}]}]`,
		"bad label":           `[{"type":{"code":"x"},"group":"hitting","stat":{}}]`,
	}

	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			pool, err := Normalize([]byte(raw))
			require.Error(t, err)
			assert.Nil(t, pool)
			assert.True(t, errors.Is(err, ErrMalformedStats), "err=%v", err)
		})
	}
}

func TestNormalizeResponse(t *testing.T) {
	t.Parallel()

	pool, err := NormalizeResponse([]byte(`{"copyright":"x","stats":[{"type":"season","group":"fielding","stat":{"errors":3}}]}`))
	require.NoError(t, err)
	assert.True(t, pool.Has("season", GroupFielding))

	empty, err := NormalizeResponse([]byte(`{"copyright":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestPool_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	pool, err := Normalize([]byte(`[{"type":"season","group":"hitting","stat":{"hits":1}}]`))
	require.NoError(t, err)

	clone := pool.Clone()
	_, err = Extract[hitSplit, Sequence[hitSplit]](clone, "season", GroupHitting)
	require.NoError(t, err)

	assert.Equal(t, 0, clone.Len())
	assert.Equal(t, 1, pool.Len())
}
