// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-layered-config/internal/mock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, DefaultConfigDir, opts.ConfigDir)
	assert.Equal(t, DefaultSchemaFileName, opts.SchemaFileName)
	assert.Equal(t, DefaultSeparator, opts.DotNotationSeparator)
	assert.True(t, opts.UseDotNotation)
	assert.True(t, opts.ThrowOnError)
	assert.False(t, opts.PrintHierarchy)
	assert.Equal(t, []string{TestEnvName}, opts.AllowRuntimeChangesInEnv)
	assert.Equal(t, []string{DefaultEnvSelector}, opts.LoadFilesFromEnv)
	assert.Equal(t, DefaultSecretMatches, opts.SecretMatches)

	opts.SecretMatches[0] = "changed"
	assert.NotEqual(t, "changed", DefaultSecretMatches[0])
}

func TestOptions_WithDefaults(t *testing.T) {
	// Arrange
	allow := []string{"staging"}
	opts := Options{AllowRuntimeChangesInEnv: allow}

	// Act
	got := opts.withDefaults()
	allow[0] = "changed"

	// Assert
	assert.Equal(t, DefaultConfigDir, got.ConfigDir)
	assert.Equal(t, DefaultFileEncoding, got.FileEncoding)
	assert.Equal(t, DefaultEnvName, got.DefaultEnv)
	assert.Equal(t, []string{"staging"}, got.AllowRuntimeChangesInEnv)
	assert.Equal(t, []string{DefaultEnvSelector}, got.LoadFilesFromEnv)
	assert.False(t, got.ThrowOnError)
}

func TestOptions_Paths(t *testing.T) {
	opts := Options{BaseDir: "app", ConfigDir: "conf", SchemaFileName: "s.json"}

	assert.Equal(t, filepath.Join("app", "conf"), opts.configPath())
	assert.Equal(t, filepath.Join("app", "conf", "s.json"), opts.schemaPath())
	assert.Equal(t, "app", opts.envPath())
	assert.Equal(t, ".", Options{}.envPath())
}

func TestLoadOptions_Layers(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	reader := mock.NewMockFileReader(ctrl)
	reader.EXPECT().ReadFile(OptionsFileName).Return([]byte(`{
		"baseDir": "/srv/app",
		"configDir": "settings",
		"throwOnError": false,
		"printHierarchy": true,
		"secretMatches": ["TOKEN"]
	}`), nil)

	environment := map[string]string{
		"CONFIG_CONFIG_DIR":                   "conf",
		"CONFIG_THROW_ON_ERROR":               "true",
		"CONFIG_ALLOW_RUNTIME_CHANGES_IN_ENV": "test,staging",
		"CONFIG_USE_DOT_NOTATION":             "false",
	}

	// Act
	opts, err := loadOptions(environment, reader)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", opts.BaseDir)
	assert.Equal(t, "conf", opts.ConfigDir)
	assert.True(t, opts.ThrowOnError)
	assert.True(t, opts.PrintHierarchy)
	assert.False(t, opts.UseDotNotation)
	assert.Equal(t, []string{"TOKEN"}, opts.SecretMatches)
	assert.Equal(t, []string{"test", "staging"}, opts.AllowRuntimeChangesInEnv)
	assert.Equal(t, DefaultSchemaFileName, opts.SchemaFileName)
}

func TestLoadOptions_FalseOverridesTrue(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock.NewMockFileReader(ctrl)
	reader.EXPECT().ReadFile(OptionsFileName).Return([]byte(`{"printHierarchy": true}`), nil)

	opts, err := loadOptions(map[string]string{"CONFIG_PRINT_HIERARCHY": "false"}, reader)

	require.NoError(t, err)
	assert.False(t, opts.PrintHierarchy)
}

func TestLoadOptions_EmptyListForbidsRuntimeChanges(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	reader := mock.NewMockFileReader(ctrl)
	reader.EXPECT().ReadFile(OptionsFileName).Return([]byte(`{"allowRuntimeChangesInEnv": []}`), nil)

	// Act
	opts, err := loadOptions(map[string]string{"CONFIG_THROW_ON_ERROR": "true"}, reader)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, opts.AllowRuntimeChangesInEnv)
	assert.Empty(t, opts.AllowRuntimeChangesInEnv)

	opts.BaseDir = "testdata"
	opts.Environment = map[string]string{"APP_ENV": "test"}
	nop := zerolog.Nop()
	opts.Logger = &nop
	e, err := Load(opts)
	require.NoError(t, err)

	_, err = e.Set("Version", "2.0.0")
	assert.ErrorIs(t, err, ErrRuntimeRestriction)
}

func TestLoadOptions_MissingDefaultFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock.NewMockFileReader(ctrl)
	reader.EXPECT().ReadFile(OptionsFileName).Return(nil, fs.ErrNotExist)

	opts, err := loadOptions(map[string]string{}, reader)

	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestLoadOptions_MissingExplicitFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock.NewMockFileReader(ctrl)
	reader.EXPECT().ReadFile("/etc/app/options.json").Return(nil, fs.ErrNotExist)

	_, err := loadOptions(map[string]string{OptionsFileEnv: "/etc/app/options.json"}, reader)

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadOptions_UnknownField(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock.NewMockFileReader(ctrl)
	reader.EXPECT().ReadFile(OptionsFileName).Return([]byte(`{"confDir": "x"}`), nil)

	_, err := loadOptions(map[string]string{}, reader)

	assert.Error(t, err)
}

func TestLoadOptions_InvalidEnv(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock.NewMockFileReader(ctrl)
	reader.EXPECT().ReadFile(OptionsFileName).Return(nil, fs.ErrNotExist)

	_, err := loadOptions(map[string]string{"CONFIG_THROW_ON_ERROR": "sometimes"}, reader)

	assert.Error(t, err)
}
