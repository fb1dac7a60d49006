// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `loader.go` calls `validateStruct` after defaults are applied and secret
// references are resolved.  Any failure aborts startup, so the binary never
// runs with a missing webhook URL or an unusable ledger backend.
//
// Built-in rules carry most of the load (`required`, `url`, `oneof`,
// `required_if`).  The one cross-field rule that tags cannot express, that a
// rate window must outlast the minimum fill time, is registered as a struct
// level check below.

package config

import "github.com/go-playground/validator/v10"

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New(validator.WithRequiredStructEnabled())
	vd.RegisterStructValidation(func(sl validator.StructLevel) {
		a := sl.Current().Interface().(Antispam)
		if a.RateWindow > 0 && a.RateWindow <= a.MinFillTime {
			sl.ReportError(a.RateWindow, "RateWindow", "rate_window", "gtfield", "MinFillTime")
		}
	}, Antispam{})
	return vd
}

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
