package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/internal/coerce"
)

// A Validator checks structs against their "validate" struct tags.
// A Validator is safe for concurrent use.
type Validator struct {
	valid *v10.Validate
	reg   *enums.Registry
}

// New constructs a Validator resolving code and label rules against the Definitions in reg.
// A nil reg supports the enum rule only.
func New(reg *enums.Registry) *Validator {
	v := &Validator{valid: v10.New(), reg: reg}
	v.valid.RegisterValidation("enum", validateEnumerable)
	v.valid.RegisterValidation("code", v.validateCode)
	v.valid.RegisterValidation("label", v.validateLabel)
	v.valid.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, key := range []string{"db", "json"} {
			name := strings.SplitN(field.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}

			if name != "" {
				return name
			}
		}

		return ""
	})

	return v
}

// Struct checks the fields on structPtr match the rules set by "validate" struct tags.
// On success, Struct returns no error.
// On failure, Struct translates each issue to a ValidationError,
// returning them all as ValidationErrors.
func (v *Validator) Struct(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var invalid *v10.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %s", enums.ErrUnaddressable, err)
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	var validateErrs ValidationErrors
	for _, ve := range errs {
		field := ve.Namespace()

		ns := strings.SplitN(field, ".", 2)
		if len(ns) == 2 {
			field = ns[1]
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		rule += "; " + ve.Type().String()

		validateErrs = append(validateErrs, ValidationError{
			Field: field,
			Got:   ve.Value(),
			Rule:  rule,
		})
	}

	return validateErrs
}

// validateEnumerable validates whether field is a valid Enumerable or slice of valid Enumerable.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()

	if field.Kind() == reflect.Slice {
		vals := []reflect.Value{}
		for i := 0; i < field.Len(); i++ {
			vals = append(vals, field.Index(i))
		}

		return checkEnums(vals...)
	}

	return checkEnums(field)
}

// checkEnums asserts each [reflect.Value] is an Enumerable and valid.
func checkEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		if !item.CanInterface() {
			return false
		}

		enum, ok := item.Interface().(enums.Enumerable)
		if !ok || enum.Valid() != nil {
			return false
		}
	}

	return true
}

// validateCode validates whether every integer in field is a code of the Definition named by the rule's param.
// An empty slice is valid.
func (v *Validator) validateCode(fl v10.FieldLevel) bool {
	d := v.definition(fl.Param())
	if d == nil {
		return false
	}

	field := fl.Field()
	if field.Kind() == reflect.Slice || field.Kind() == reflect.Array {
		codes, ok := coerce.Ints(field.Interface())
		if !ok {
			return false
		}

		for _, c := range codes {
			if !d.Valid(int(c)) {
				return false
			}
		}

		return true
	}

	code, ok := coerce.Int(field.Interface())
	return ok && d.Valid(int(code))
}

// validateLabel validates whether every string in field is a label of the Definition named by the rule's param.
func (v *Validator) validateLabel(fl v10.FieldLevel) bool {
	d := v.definition(fl.Param())
	if d == nil {
		return false
	}

	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return d.Has(field.String())

	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			item := field.Index(i)
			if item.Kind() != reflect.String || !d.Has(item.String()) {
				return false
			}
		}

		return true
	}

	return false
}

func (v *Validator) definition(name string) *enums.Definition {
	if v.reg == nil {
		return nil
	}

	d, err := v.reg.Definition(name)
	if err != nil {
		return nil
	}

	return d
}
