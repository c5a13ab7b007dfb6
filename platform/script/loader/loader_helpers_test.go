package loader

import (
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	simpleRule    = `foo.bar() == 7`
	multilineRule = "if user.tier == \"gold\" then\n  discount.gold()\nelse\n  0\nend"
)

// MockLoader is a testify mock of Loader.
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) GetReader() (io.ReadCloser, error) {
	args := m.Called()
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockLoader) GetSourceURL() *url.URL {
	args := m.Called()
	u, _ := args.Get(0).(*url.URL)
	return u
}

var _ Loader = (*MockLoader)(nil)

func readAll(t *testing.T, l Loader) string {
	t.Helper()
	rc, err := l.GetReader()
	require.NoError(t, err)
	defer func() { require.NoError(t, rc.Close()) }()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(content)
}

func requireScheme(t *testing.T, l Loader, scheme string) {
	t.Helper()
	u := l.GetSourceURL()
	require.NotNil(t, u)
	require.Equal(t, scheme, u.Scheme)
	require.False(t, strings.Contains(u.String(), " "))
}
