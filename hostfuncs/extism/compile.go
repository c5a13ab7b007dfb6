package extism

import (
	"context"
	"errors"
	"fmt"

	extismSDK "github.com/extism/go-sdk"
	"github.com/tetratelabs/wazero"
)

var (
	ErrContentNil    = errors.New("wasm content is nil")
	ErrCompileFailed = errors.New("failed to compile wasm plugin")
	ErrExportMissing = errors.New("export not found in plugin")
	ErrCallFailed    = errors.New("wasm export call failed")
)

// Settings holds configuration for compiling a WASM plugin
type Settings struct {
	EnableWASI    bool
	RuntimeConfig wazero.RuntimeConfig
	HostFunctions []extismSDK.HostFunction
}

// DefaultSettings enables WASI and uses a default wazero runtime.
func DefaultSettings() *Settings {
	return &Settings{
		EnableWASI:    true,
		RuntimeConfig: wazero.NewRuntimeConfig(),
	}
}

// CompileBytes compiles raw WASM bytes into a plugin that can be instantiated many
// times.
func CompileBytes(ctx context.Context, wasmBytes []byte, settings *Settings) (CompiledPlugin, error) {
	if len(wasmBytes) == 0 {
		return nil, ErrContentNil
	}
	if settings == nil {
		settings = DefaultSettings()
	}

	manifest := extismSDK.Manifest{
		Wasm: []extismSDK.Wasm{
			extismSDK.WasmData{Data: wasmBytes},
		},
	}
	config := extismSDK.PluginConfig{
		EnableWasi:    settings.EnableWASI,
		RuntimeConfig: settings.RuntimeConfig,
	}

	plugin, err := extismSDK.NewCompiledPlugin(ctx, manifest, config, settings.HostFunctions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}
	return NewCompiledPluginAdapter(plugin), nil
}
