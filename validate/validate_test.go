package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/validate"
)

var (
	priority = enums.MustDefine("priority", []enums.Label{
		{Name: "low", Code: 0},
		{Name: "medium", Code: 1},
		{Name: "high", Code: 2},
	})

	notificationType = enums.MustDefine("notification_type", []enums.Label{
		{Name: "email", Code: 0},
		{Name: "sms", Code: 1},
		{Name: "push", Code: 2},
		{Name: "in_app", Code: 3},
	})
)

func newValidator(t *testing.T) *validate.Validator {
	t.Helper()

	reg, err := enums.NewRegistry([]enums.Entity{
		{Name: "support_tickets", Fields: []enums.Field{{Column: "priority", Definition: priority}}},
		{Name: "notification_preferences", MultiFields: []enums.MultiField{{Column: "enabled_types", Definition: notificationType}}},
	})
	require.Nil(t, err)

	return validate.New(reg)
}

type source string

func (s source) String() string { return string(s) }

func (s source) Valid() error {
	switch s {
	case "web", "email", "phone":
		return nil
	default:
		return enums.ErrNotValid
	}
}

type ticketForm struct {
	Priority int           `db:"priority" validate:"code=priority"`
	Types    pq.Int64Array `db:"enabled_types" validate:"code=notification_type"`
	Label    string        `json:"label" validate:"omitempty,label=priority"`
	Labels   []string      `json:"labels" validate:"label=notification_type"`
	Levels   []enums.Value `json:"levels" validate:"enum"`
	Source   source        `json:"source" validate:"enum"`
}

func validForm() ticketForm {
	high, _ := priority.Value("high")
	return ticketForm{
		Priority: 2,
		Types:    pq.Int64Array{0, 3},
		Label:    "medium",
		Labels:   []string{"sms"},
		Levels:   []enums.Value{high},
		Source:   "web",
	}
}

func TestValidatorStruct(t *testing.T) {
	tcs := []struct {
		name   string
		mutate func(f *ticketForm)
		fields []string
	}{
		{"valid", func(f *ticketForm) {}, nil},
		{"empty-types", func(f *ticketForm) { f.Types = pq.Int64Array{} }, nil},
		{"empty-label", func(f *ticketForm) { f.Label = "" }, nil},
		{"bad-code", func(f *ticketForm) { f.Priority = 9 }, []string{"priority"}},
		{"bad-types", func(f *ticketForm) { f.Types = pq.Int64Array{0, 7} }, []string{"enabled_types"}},
		{"bad-label", func(f *ticketForm) { f.Label = "urgent" }, []string{"label"}},
		{"bad-labels", func(f *ticketForm) { f.Labels = []string{"sms", "fax"} }, []string{"labels"}},
		{"zero-enum", func(f *ticketForm) { f.Levels = append(f.Levels, enums.Value{}) }, []string{"levels"}},
		{"no-enums", func(f *ticketForm) { f.Levels = nil }, []string{"levels"}},
		{"bad-source", func(f *ticketForm) { f.Source = "fax" }, []string{"source"}},
		{
			"many",
			func(f *ticketForm) {
				f.Priority = -1
				f.Label = "severe"
			},
			[]string{"priority", "label"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			v := newValidator(t)
			form := validForm()
			tc.mutate(&form)

			// Act
			err := v.Struct(&form)

			// Assert
			if tc.fields == nil {
				require.Nil(t, err)
				return
			}

			require.ErrorIs(t, err, enums.ErrNotValid)

			var verrs validate.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Equal(t, tc.fields, verrs.Fields())
		})
	}
}

func TestValidatorUnknownDefinition(t *testing.T) {
	// Arrange
	type form struct {
		Speed int `db:"speed" validate:"code=shipping_speed"`
	}
	v := newValidator(t)

	// Act
	err := v.Struct(&form{})

	// Assert
	require.ErrorIs(t, err, enums.ErrNotValid)
}

func TestValidatorWithoutRegistry(t *testing.T) {
	// Arrange
	type form struct {
		Priority int `db:"priority" validate:"code=priority"`
	}
	v := validate.New(nil)

	// Act
	err := v.Struct(&form{Priority: 1})

	// Assert
	require.ErrorIs(t, err, enums.ErrNotValid)
}

func TestValidatorNotStruct(t *testing.T) {
	// Arrange
	v := newValidator(t)

	// Act
	err := v.Struct(nil)

	// Assert
	require.ErrorIs(t, err, enums.ErrUnaddressable)
}

func TestValidationErrors(t *testing.T) {
	// Arrange
	errs := validate.ValidationErrors{
		{Field: "priority", Got: 9, Rule: "code=priority; int"},
	}

	// Act
	msg := errs.Error()
	b, err := json.Marshal(errs)

	// Assert
	require.Equal(t, `field="priority" rule="code=priority; int" got="9"`, msg)
	require.Nil(t, err)
	require.JSONEq(t, `{"validationErrors":[{"field":"priority","got":9,"rule":"code=priority; int"}]}`, string(b))
}
