package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestOptionsCloneNil(t *testing.T) {
	var o Options
	assert.Nil(t, o.Clone())
	assert.True(t, o.Empty())
}

func TestOptionsCloneDeep(t *testing.T) {
	in := Options{
		"list":   []any{map[string]any{"k": "v"}},
		"nested": Options{"inner": []string{"x"}},
	}
	out := in.Clone()
	require.Equal(t, in, out)

	out["list"].([]any)[0].(map[string]any)["k"] = "changed"
	out["nested"].(Options)["inner"].([]string)[0] = "y"

	assert.Equal(t, "v", in["list"].([]any)[0].(map[string]any)["k"])
	assert.Equal(t, "x", in["nested"].(Options)["inner"].([]string)[0])
}

func TestOptionsStructRoundTrip(t *testing.T) {
	in := Options{
		"notificationId": "abc123",
		"badge":          3,
		"silent":         false,
		"missing":        nil,
		"aps":            Options{"alert": "hi"},
		"tags":           []string{"a", "b"},
	}
	s, err := in.ToStruct()
	require.NoError(t, err)

	got := FromStruct(s)
	assert.Equal(t, Options{
		"notificationId": "abc123",
		"badge":          float64(3),
		"silent":         false,
		"missing":        nil,
		"aps":            map[string]any{"alert": "hi"},
		"tags":           []any{"a", "b"},
	}, got)
}

func TestOptionsCloneTypedContainers(t *testing.T) {
	in := Options{
		"headers": map[string]string{"x-id": "1"},
		"items":   []map[string]any{{"id": "a", "tags": []string{"t"}}},
		"counts":  map[string][]int{"n": {1, 2}},
	}
	out := in.Clone()
	require.Equal(t, in, out)

	out["headers"].(map[string]string)["x-id"] = "2"
	out["items"].([]map[string]any)[0]["id"] = "b"
	out["items"].([]map[string]any)[0]["tags"].([]string)[0] = "u"
	out["counts"].(map[string][]int)["n"][0] = 9

	assert.Equal(t, "1", in["headers"].(map[string]string)["x-id"])
	assert.Equal(t, "a", in["items"].([]map[string]any)[0]["id"])
	assert.Equal(t, "t", in["items"].([]map[string]any)[0]["tags"].([]string)[0])
	assert.Equal(t, 1, in["counts"].(map[string][]int)["n"][0])
}

func TestOptionsToStructTypedContainers(t *testing.T) {
	in := Options{
		"headers": map[string]string{"x-id": "1"},
		"items":   []map[string]any{{"id": "a"}},
		"ports":   []int{80, 443},
	}
	s, err := in.ToStruct()
	require.NoError(t, err)

	assert.Equal(t, Options{
		"headers": map[string]any{"x-id": "1"},
		"items":   []any{map[string]any{"id": "a"}},
		"ports":   []any{float64(80), float64(443)},
	}, FromStruct(s))
}

func TestOptionsToStructRejectsUnsupported(t *testing.T) {
	_, err := Options{"ch": make(chan int)}.ToStruct()
	assert.Error(t, err)
}

func TestFromStructNil(t *testing.T) {
	got := FromStruct(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	empty, err := structpb.NewStruct(nil)
	require.NoError(t, err)
	assert.Empty(t, FromStruct(empty))
}
