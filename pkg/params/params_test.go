// Test Type: Unit Test
// Description: Tests for the parameter parser - quoting, escapes, repeated keys and names

package params

import (
	"testing"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Param
	}{
		{
			name:  "empty",
			input: "   ",
			want:  nil,
		},
		{
			name:  "double quoted",
			input: `skip="do"`,
			want:  []Param{{"skip", "do"}},
		},
		{
			name:  "single quoted with spaces",
			input: `format='%d. '`,
			want:  []Param{{"format", "%d. "}},
		},
		{
			name:  "bare word and bare key",
			input: `to=4 killFirst`,
			want:  []Param{{"to", "4"}, {"killFirst", "true"}},
		},
		{
			name:  "nested directive",
			input: `regex="replace='/a/b/' kill='x'"`,
			want:  []Param{{"regex", "replace='/a/b/' kill='x'"}},
		},
		{
			name:  "escaped quote",
			input: `replace="/\"/'/"`,
			want:  []Param{{"replace", `/"/'/`}},
		},
		{
			name:  "regex escapes stay literal",
			input: `kill='^\s*//'`,
			want:  []Param{{"kill", `^\s*//`}},
		},
		{
			name:  "empty value",
			input: `escape=""`,
			want:  []Param{{"escape", ""}},
		},
		{
			name:  "repeated keys keep order",
			input: `replace='/a/b/' replace='/c/d/'`,
			want:  []Param{{"replace", "/a/b/"}, {"replace", "/c/d/"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Entries())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{`a="open`, `b='x`, `=x`} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSegmentParams))
		})
	}
}

func TestParseNamed(t *testing.T) {
	name, p, err := ParseNamed(`Main skip="do" number`)
	require.NoError(t, err)
	assert.Equal(t, "Main", name)
	assert.Equal(t, "do", p.GetDefault("skip", ""))
	assert.True(t, p.Has("number"))

	name, p, err = ParseNamed(`snippet="Other"`)
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, 1, p.Len())
}

func TestParams_Accessors(t *testing.T) {
	p, err := Parse(`start=3 step=x kill='a' kill='b' killFirst=yes`)
	require.NoError(t, err)

	n, err := p.Int("start", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = p.Int("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = p.Int("step", 1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSegmentParams))

	assert.Equal(t, []string{"a", "b"}, p.All("kill"))
	assert.Equal(t, []string{"start", "step", "kill", "killFirst"}, p.Keys())

	_, err = p.Bool("killFirst", false)
	assert.Error(t, err, "yes is not accepted by strconv.ParseBool")

	assert.Equal(t, map[string]interface{}{
		"start":     "3",
		"step":      "x",
		"kill":      []string{"a", "b"},
		"killFirst": "yes",
	}, p.Map())
}

func TestParams_Nil(t *testing.T) {
	var p *Params
	assert.False(t, p.Has("x"))
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.All("x"))
	assert.Equal(t, "d", p.GetDefault("x", "d"))
}
