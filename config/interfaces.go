// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

//go:generate mockgen -source=interfaces.go -destination=../internal/mock/schema_compiler_mock.go -package=mock -exclude_interfaces=FileReader

import "github.com/MKhiriev/go-layered-config/models"

// SchemaCompiler compiles a raw JSON-Schema document into a validation
// function. The function may inject defaults into and coerce values of the
// object it validates.
type SchemaCompiler interface {
	Compile(raw []byte) (models.ValidateFunc, error)
}

// FileReader reads configuration, schema and dotenv files. A missing file
// must be reported with an error matching fs.ErrNotExist.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}
