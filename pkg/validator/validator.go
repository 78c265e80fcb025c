// Package validator valida structs de request con go-playground/validator
// usando un singleton (el Validate cachea metadatos de structs y es seguro
// para uso concurrente).
package validator

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v    *gpvalidator.Validate
	once sync.Once
)

// Struct valida un struct según sus tags `validate`.
func Struct(s interface{}) error {
	once.Do(func() { v = gpvalidator.New() })
	return v.Struct(s)
}
