package starlark

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-rulescript/engines/rules/interpreter"
	"github.com/robbyt/go-rulescript/engines/rules/parser"
	"github.com/robbyt/go-rulescript/platform/data"
	"github.com/robbyt/go-rulescript/platform/script/loader"
)

const testModule = `
limit = 10
tiers = ["gold", "silver"]
_private = "hidden"

def tier():
    return tiers[0]

def is_vip():
    return tier() == "gold" and owner == "ann"

def add(a, b):
    return a + b

def profile():
    return {"name": owner, "scores": (1, 2.5)}

def spin():
    n = 0
    for i in range(100000000):
        n += i
    return n

def boom():
    fail("boom")
`

func quietHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}

func newTestProvider(t *testing.T, opts ...FunctionalOption) *Provider {
	t.Helper()
	opts = append([]FunctionalOption{
		WithLogHandler(quietHandler()),
		WithPredeclared(map[string]any{"owner": "ann"}),
	}, opts...)
	p, err := New("test.star", []byte(testModule), opts...)
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("names", func(t *testing.T) {
		p := newTestProvider(t)
		assert.Equal(t,
			[]string{"add", "boom", "is_vip", "limit", "profile", "spin", "tier", "tiers"},
			p.Names())
		assert.Contains(t, p.String(), "test.star")
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := New("x.star", nil)
		require.ErrorIs(t, err, ErrContentNil)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := New("x.star", []byte("def broken(:\n"), WithLogHandler(quietHandler()))
		require.ErrorIs(t, err, ErrCompileFailed)
	})

	t.Run("undefined name", func(t *testing.T) {
		_, err := New("x.star", []byte("x = nope\n"), WithLogHandler(quietHandler()))
		require.ErrorIs(t, err, ErrCompileFailed)
	})

	t.Run("module fails while loading", func(t *testing.T) {
		_, err := New("x.star", []byte("fail('no')\n"), WithLogHandler(quietHandler()))
		require.ErrorIs(t, err, ErrExecFailed)
	})

	t.Run("bad predeclared value", func(t *testing.T) {
		_, err := New("x.star", []byte("x = 1\n"),
			WithLogHandler(quietHandler()),
			WithPredeclared(map[string]any{"ch": make(chan int)}))
		require.ErrorIs(t, err, ErrCompileFailed)
	})

	t.Run("nil log handler", func(t *testing.T) {
		_, err := New("x.star", []byte("x = 1\n"), WithLogHandler(nil))
		require.Error(t, err)
	})

	t.Run("from loader", func(t *testing.T) {
		ldr, err := loader.NewFromString(testModule)
		require.NoError(t, err)

		p, err := NewFromLoader(ldr,
			WithLogHandler(quietHandler()),
			WithPredeclared(map[string]any{"owner": "bob"}))
		require.NoError(t, err)

		got, err := p.Call(t.Context(), "is_vip")
		require.NoError(t, err)
		assert.Equal(t, false, got)
	})
}

func TestProvider_Call(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t)

	tests := []struct {
		name    string
		fn      string
		want    any
		wantErr bool
	}{
		{"string result", "tier", "gold", false},
		{"bool result", "is_vip", true, false},
		{"dict result", "profile", map[string]any{"name": "ann", "scores": []any{int64(1), 2.5}}, false},
		{"fail builtin", "boom", nil, true},
		{"function with params", "add", nil, true},
		{"not a function", "limit", nil, true},
		{"private", "_private", nil, true},
		{"missing", "nope", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := p.Call(t.Context(), tt.fn)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrCallFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProvider_Limits(t *testing.T) {
	t.Parallel()

	t.Run("step limit", func(t *testing.T) {
		p := newTestProvider(t, WithMaxSteps(1000))
		_, err := p.Call(t.Context(), "spin")
		require.ErrorIs(t, err, ErrCallFailed)
	})

	t.Run("context cancel", func(t *testing.T) {
		p := newTestProvider(t, WithMaxSteps(0))
		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		_, err := p.Call(ctx, "spin")
		require.ErrorIs(t, err, ErrCallFailed)
		assert.Contains(t, err.Error(), context.DeadlineExceeded.Error())
	})

	t.Run("already cancelled", func(t *testing.T) {
		p := newTestProvider(t)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := p.Call(ctx, "tier")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestProvider_GetData(t *testing.T) {
	t.Parallel()

	t.Run("top level", func(t *testing.T) {
		p := newTestProvider(t)
		got, err := p.GetData(t.Context())
		require.NoError(t, err)

		assert.Equal(t, int64(10), got["limit"])
		assert.Equal(t, []any{"gold", "silver"}, got["tiers"])
		assert.NotContains(t, got, "_private")
		assert.NotContains(t, got, "add")

		tier, ok := got["tier"].(func() (any, error))
		require.True(t, ok)
		v, err := tier()
		require.NoError(t, err)
		assert.Equal(t, "gold", v)
	})

	t.Run("namespace", func(t *testing.T) {
		p := newTestProvider(t, WithNamespace("acct"))
		got, err := p.GetData(t.Context())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Contains(t, got["acct"], "is_vip")
	})

	t.Run("static", func(t *testing.T) {
		p := newTestProvider(t)
		var _ data.Provider = p
		_, err := p.AddDataToContext(t.Context(), map[string]any{"a": 1})
		require.ErrorIs(t, err, data.ErrStaticProviderNoRuntimeUpdates)
	})
}

func TestProvider_FromRule(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, WithNamespace("acct"))

	tests := []struct {
		rule string
		want any
	}{
		{`acct.is_vip() && "vip" || "regular"`, "vip"},
		{`acct.limit >= 10`, true},
		{`acct.profile().name`, "ann"},
		{`acct.tiers.length`, 2.0},
		{`acct.boom()`, nil},
		{`acct.add()`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			t.Parallel()
			globals, err := p.GetData(t.Context())
			require.NoError(t, err)

			in, err := interpreter.New(globals, interpreter.WithLogHandler(quietHandler()))
			require.NoError(t, err)

			prog, err := parser.ParseString(tt.rule)
			require.NoError(t, err)

			result := in.Evaluate(prog)
			assert.Equal(t, tt.want, valueToGo(result))
		})
	}
}

func TestProvider_Concurrent(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t)

	errs := make(chan error, 20)
	for range 20 {
		go func() {
			v, err := p.Call(context.Background(), "is_vip")
			if err == nil && v != true {
				err = assert.AnError
			}
			errs <- err
		}()
	}
	for range 20 {
		require.NoError(t, <-errs)
	}
}
