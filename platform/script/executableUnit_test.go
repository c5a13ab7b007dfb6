package script

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-rulescript/engines/rules/ast"
	"github.com/robbyt/go-rulescript/internal/helpers"
	"github.com/robbyt/go-rulescript/platform/data"
	"github.com/robbyt/go-rulescript/platform/script/loader"
)

const testRule = "foo.bar() == 7"

func quietHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}

func newMockContent(source string) *MockExecutableContent {
	content := new(MockExecutableContent)
	content.On("GetSource").Return(source)
	content.On("GetAST").Return(&ast.Program{})
	return content
}

func TestNewExecutableUnit(t *testing.T) {
	t.Parallel()

	t.Run("derives the ID from the source", func(t *testing.T) {
		l, err := loader.NewFromString(testRule)
		require.NoError(t, err)

		compiler := new(MockCompiler)
		compiler.On("Compile", mock.Anything).Return(newMockContent(testRule), nil)

		exe, err := NewExecutableUnit(quietHandler(), "", l, compiler, nil)
		require.NoError(t, err)

		assert.Equal(t, helpers.SHA256(testRule)[:checksumLength], exe.GetID())
		assert.Equal(t, testRule, exe.GetContent().GetSource())
		assert.Same(t, compiler, exe.GetCompiler())
		assert.Same(t, l, exe.GetLoader())
		assert.False(t, exe.GetCreatedAt().IsZero())
		assert.Contains(t, exe.String(), exe.GetID())
		compiler.AssertExpectations(t)
	})

	t.Run("keeps an explicit ID", func(t *testing.T) {
		l, err := loader.NewFromString(testRule)
		require.NoError(t, err)
		compiler := new(MockCompiler)
		compiler.On("Compile", mock.Anything).Return(newMockContent(testRule), nil)

		exe, err := NewExecutableUnit(quietHandler(), "discount-v2", l, compiler, nil)
		require.NoError(t, err)
		assert.Equal(t, "discount-v2", exe.GetID())
	})

	t.Run("default provider is empty static data", func(t *testing.T) {
		l, err := loader.NewFromString(testRule)
		require.NoError(t, err)
		compiler := new(MockCompiler)
		compiler.On("Compile", mock.Anything).Return(newMockContent(testRule), nil)

		exe, err := NewExecutableUnit(nil, "", l, compiler, nil)
		require.NoError(t, err)

		got, err := exe.GetDataProvider().GetData(t.Context())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("uses the given provider", func(t *testing.T) {
		l, err := loader.NewFromString(testRule)
		require.NoError(t, err)
		compiler := new(MockCompiler)
		compiler.On("Compile", mock.Anything).Return(newMockContent(testRule), nil)
		provider := data.NewStaticProvider(map[string]any{"a": 1})

		exe, err := NewExecutableUnit(quietHandler(), "", l, compiler, provider)
		require.NoError(t, err)
		assert.Same(t, provider, exe.GetDataProvider())
	})

	t.Run("loader failure", func(t *testing.T) {
		l := new(mockLoader)
		l.On("GetReader").Return(nil, loader.ErrScriptNotAvailable)

		_, err := NewExecutableUnit(quietHandler(), "", l, new(MockCompiler), nil)
		require.ErrorIs(t, err, loader.ErrScriptNotAvailable)
		l.AssertExpectations(t)
	})

	t.Run("compiler failure", func(t *testing.T) {
		l := new(mockLoader)
		l.On("GetReader").Return(io.NopCloser(strings.NewReader("a ==")), nil)
		compiler := new(MockCompiler)
		compiler.On("Compile", mock.Anything).Return(nil, assert.AnError)

		_, err := NewExecutableUnit(quietHandler(), "", l, compiler, nil)
		require.ErrorIs(t, err, ErrCompiler)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("missing parts", func(t *testing.T) {
		_, err := NewExecutableUnit(quietHandler(), "", nil, new(MockCompiler), nil)
		require.ErrorIs(t, err, ErrNoLoader)

		l, err := loader.NewFromString(testRule)
		require.NoError(t, err)
		_, err = NewExecutableUnit(quietHandler(), "", l, nil, nil)
		require.ErrorIs(t, err, ErrCompiler)
	})
}
