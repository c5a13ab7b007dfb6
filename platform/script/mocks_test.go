package script

import (
	"io"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/robbyt/go-rulescript/engines/rules/ast"
)

type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Compile(scriptReader io.ReadCloser) (ExecutableContent, error) {
	args := m.Called(scriptReader)
	content, _ := args.Get(0).(ExecutableContent)
	return content, args.Error(1)
}

type MockExecutableContent struct {
	mock.Mock
}

func (m *MockExecutableContent) GetSource() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockExecutableContent) GetAST() ast.Node {
	args := m.Called()
	node, _ := args.Get(0).(ast.Node)
	return node
}

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) GetReader() (io.ReadCloser, error) {
	args := m.Called()
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *mockLoader) GetSourceURL() *url.URL {
	args := m.Called()
	u, _ := args.Get(0).(*url.URL)
	return u
}
