package validator

import (
	"reflect"
	"sync"

	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/NethermindEth/starkevents/utils"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Validator returns a singleton that can be used to validate various objects
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New()

		// Register these types to use their string representation for validation
		// purposes
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			switch f := field.Interface().(type) {
			case felt.Felt:
				return f.String()
			case *felt.Felt:
				return f.String()
			}
			panic("not a felt")
		}, felt.Felt{}, &felt.Felt{})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if l, ok := field.Interface().(utils.LogLevel); ok {
				return l.String()
			}
			panic("not a utils.LogLevel")
		}, utils.LogLevel(0))
	})
	return v
}
