package options

import (
	"io"
	"log/slog"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-rulescript/platform/data"
)

// MockLoader is a testify mock implementation of loader.Loader for testing
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) GetReader() (io.ReadCloser, error) {
	args := m.Called()
	reader, _ := args.Get(0).(io.ReadCloser)
	return reader, args.Error(1)
}

func (m *MockLoader) GetSourceURL() *url.URL {
	args := m.Called()
	u, _ := args.Get(0).(*url.URL)
	return u
}

func TestWithOptions(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	testHandler := slog.NewTextHandler(os.Stdout, nil)
	testDataProvider := data.NewStaticProvider(map[string]any{"test": "value"})
	testLoader := new(MockLoader)

	require.NoError(t, WithLogHandler(testHandler)(cfg))
	require.NoError(t, WithDataProvider(testDataProvider)(cfg))
	require.NoError(t, WithLoader(testLoader)(cfg))
	require.NoError(t, WithGlobals("user", "isAdmin")(cfg))

	assert.Equal(t, testHandler, cfg.GetHandler())
	assert.Equal(t, testDataProvider, cfg.GetDataProvider())
	assert.Equal(t, testLoader, cfg.GetLoader())
	assert.Len(t, cfg.GetCompilerOptions(), 2)
}

func TestNilOptions(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	require.Error(t, WithLogHandler(nil)(cfg))
	require.Error(t, WithDataProvider(nil)(cfg))
	require.Error(t, WithLoader(nil)(cfg))
}

func TestWithStaticData(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	require.NoError(t, WithStaticData(map[string]any{"limit": 3})(cfg))
	require.IsType(t, &data.CompositeProvider{}, cfg.GetDataProvider())

	ctx, err := cfg.GetDataProvider().AddDataToContext(t.Context(), map[string]any{"user": "ann"})
	require.NoError(t, err)

	got, err := cfg.GetDataProvider().GetData(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"limit": 3, "user": "ann"}, got)
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	cfg := &Config{dataProvider: DefaultDataProvider()}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no loader specified")

	cfg = &Config{loader: new(MockLoader)}
	err = cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no data provider specified")

	cfg = DefaultConfig()
	require.NoError(t, WithLoader(new(MockLoader))(cfg))
	require.NoError(t, cfg.Validate())
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	require.NoError(t, WithDefaults()(cfg))
	assert.NotNil(t, cfg.GetHandler())
	assert.NotNil(t, cfg.GetDataProvider())

	custom := data.NewStaticProvider(nil)
	cfg = &Config{dataProvider: custom}
	require.NoError(t, WithDefaults()(cfg))
	assert.Same(t, custom, cfg.GetDataProvider())
}
