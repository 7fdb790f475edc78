package dotenv

import (
	"bytes"
	"errors"
	"testing"

	"github.com/AD7six/dotenv/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingEnvironment rejects every write.
type failingEnvironment struct {
	*MapEnvironment
}

func (failingEnvironment) Set(key, value string) error {
	return errors.New("read-only environment")
}

func newTestStore(t *testing.T, global bool) (*Store, *MapEnvironment) {
	t.Helper()
	env := NewMapEnvironment()
	return New(t.TempDir(), WithGlobal(global), WithEnvironment(env)), env
}

func TestStoreGetSet(t *testing.T) {
	for _, global := range []bool{true, false} {
		name := "local"
		if global {
			name = "global"
		}

		t.Run(name, func(t *testing.T) {
			s, _ := newTestStore(t, global)

			require.NoError(t, s.Set("var", "some value"))
			for _, key := range []string{"var", "VAR", "Var"} {
				v, ok := s.Get(key)
				assert.True(t, ok, key)
				assert.Equal(t, "some value", v, key)
			}

			_, ok := s.Get("missing")
			assert.False(t, ok)
			assert.Equal(t, []string{"VAR"}, s.Keys())
		})
	}
}

func TestStoreGlobalTier(t *testing.T) {
	t.Run("global mode writes to the environment", func(t *testing.T) {
		s, env := newTestStore(t, true)
		require.NoError(t, s.Set("foo", "bar"))

		v, ok := env.Lookup("FOO")
		assert.True(t, ok)
		assert.Equal(t, "bar", v)
	})

	t.Run("global mode reads the environment first", func(t *testing.T) {
		s, env := newTestStore(t, true)
		require.NoError(t, s.Set("FOO", "mine"))
		require.NoError(t, env.Set("FOO", "changed elsewhere"))
		require.NoError(t, env.Set("INHERITED", "from env"))

		v, _ := s.Get("FOO")
		assert.Equal(t, "changed elsewhere", v)
		v, ok := s.Get("inherited")
		assert.True(t, ok)
		assert.Equal(t, "from env", v)
	})

	t.Run("local mode never touches the environment", func(t *testing.T) {
		s, env := newTestStore(t, false)
		require.NoError(t, env.Set("INHERITED", "from env"))

		require.NoError(t, s.Set("FOO", "bar"))
		require.NoError(t, s.Unset("INHERITED"))
		require.NoError(t, s.Clear())
		require.NoError(t, s.Set("BAZ", "qux"))

		assert.Equal(t, 1, env.Len())
		assert.False(t, s.IsSet("INHERITED"))
		v, ok := s.Get("BAZ")
		assert.True(t, ok)
		assert.Equal(t, "qux", v)
	})

	t.Run("global stores share one environment", func(t *testing.T) {
		env := NewMapEnvironment()
		a := New(t.TempDir(), WithEnvironment(env))
		b := New(t.TempDir(), WithEnvironment(env))

		require.NoError(t, a.Set("SHARED", "from a"))
		v, ok := b.Get("shared")
		assert.True(t, ok)
		assert.Equal(t, "from a", v)
	})

	t.Run("environment errors are returned", func(t *testing.T) {
		s := New(t.TempDir(), WithEnvironment(failingEnvironment{NewMapEnvironment()}))

		assert.Error(t, s.Set("FOO", "bar"))
		assert.Empty(t, s.Keys())
	})
}

func TestStoreEmptyValue(t *testing.T) {
	s, _ := newTestStore(t, true)
	require.NoError(t, s.Set("EMPTY", ""))

	v, ok := s.Get("empty")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.True(t, s.IsSet("EMPTY"))
	assert.NoError(t, s.CheckRequired([]string{"EMPTY"}))
}

func TestStoreSetResolvesValue(t *testing.T) {
	s, _ := newTestStore(t, true)
	require.NoError(t, s.Set("VAR3", "Hello World!"))

	require.NoError(t, s.Set("TESTVAR", "some value: ${var3}"))
	v, _ := s.Get("TESTVAR")
	assert.Equal(t, "some value: Hello World!", v)

	require.NoError(t, s.Set("TESTVAR", `"quoted: ${VAR3}" # gone`))
	v, _ = s.Get("TESTVAR")
	assert.Equal(t, "quoted: Hello World!", v)
}

func TestStoreUnsetClear(t *testing.T) {
	s, env := newTestStore(t, true)
	require.NoError(t, s.Set("TEST", "value"))
	require.NoError(t, s.Set("OTHER", "value"))

	require.NoError(t, s.Unset("test"))
	assert.False(t, s.IsSet("TEST"))
	_, ok := env.Lookup("TEST")
	assert.False(t, ok)

	require.NoError(t, s.Clear())
	_, ok = s.Get("OTHER")
	assert.False(t, ok)
	assert.Equal(t, 0, env.Len())
	assert.Empty(t, s.Keys())
}

func TestStoreLoadData(t *testing.T) {
	lines := []string{
		"# comment",
		"VAR=test",
		"42=numeric",
		"=no key",
		"MY KEY=space",
		"VAR1=Hello",
		"VAR2=World!",
		"VAR3=${VAR1} ${var2}",
		"VAR4={$VAR1} $VAR2 {VAR1}",
		"EARLY=${LATE}",
		"LATE=too late",
		"BARE",
	}

	s, env := newTestStore(t, true)
	require.NoError(t, s.LoadData(lines, false))

	want := map[string]string{
		"VAR":   "test",
		"VAR1":  "Hello",
		"VAR2":  "World!",
		"VAR3":  "Hello World!",
		"VAR4":  "{$VAR1} $VAR2 {VAR1}",
		"EARLY": "",
		"LATE":  "too late",
		"BARE":  "",
	}
	assert.Equal(t, want, s.Environ())
	assert.Equal(t, len(want), env.Len())

	for _, key := range []string{"42", "", "MY KEY", "MY"} {
		assert.False(t, s.IsSet(key), key)
	}
}

func TestStoreLoadDataLogsSkipReason(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger
	logging.Logger = logging.New("debug", &buf)
	t.Cleanup(func() { logging.Logger = prev })

	s, _ := newTestStore(t, false)
	require.NoError(t, s.LoadData([]string{"=empty", "42=numeric", "MY KEY=space", "# comment"}, false))

	out := buf.String()
	assert.Contains(t, out, `line=1 reason="empty key"`)
	assert.Contains(t, out, `line=2 reason="numeric key"`)
	assert.Contains(t, out, `line=3 reason="whitespace in key"`)
	assert.NotContains(t, out, "line=4")
}

func TestStoreLoadDataOverwrite(t *testing.T) {
	tests := []struct {
		name      string
		overwrite bool
		want      string
	}{
		{"keeps first value", false, "first"},
		{"second value wins", true, "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, true)
			require.NoError(t, s.LoadData([]string{"KEY=first"}, tt.overwrite))
			require.NoError(t, s.LoadData([]string{"key=second"}, tt.overwrite))

			v, _ := s.Get("KEY")
			assert.Equal(t, tt.want, v)
		})
	}

	t.Run("inherited environment is kept", func(t *testing.T) {
		s, env := newTestStore(t, true)
		require.NoError(t, env.Set("HOME_DIR", "/home/me"))
		require.NoError(t, s.LoadData([]string{"HOME_DIR=/tmp"}, false))

		v, _ := s.Get("HOME_DIR")
		assert.Equal(t, "/home/me", v)
	})
}

func TestStoreCheckRequired(t *testing.T) {
	s, _ := newTestStore(t, true)
	require.NoError(t, s.Set("FOO", "bar"))

	assert.NoError(t, s.CheckRequired(nil))
	assert.NoError(t, s.CheckRequired([]string{"FOO"}))
	assert.NoError(t, s.CheckRequired([]string{"foo"}))

	err := s.CheckRequired([]string{"foo", "bar", "baz"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequired))
	assert.Equal(t, `required variable(s) not set: "BAR, BAZ"`, err.Error())

	var missing *MissingRequiredError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"BAR", "BAZ"}, missing.Keys)
}
