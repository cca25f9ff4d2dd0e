package core

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const DateLayout = "2006-01-02"

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	isoDateTag   = "isodate"
	isoDateText  = "{0} must be a date in the YYYY-MM-DD format"
	isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	periodTag  = "period"
	periodText = "{0} is not one of the configured periods"

	requiredTag  = "required"
	requiredText = "this field is required"
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(isoDateTag, isoDateValidation)
	RegisterCustomTranslation(isoDateTag, isoDateText)

	_ = Validate.RegisterValidation(periodTag, periodValidation)
	RegisterCustomTranslation(periodTag, periodText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldErrors flattens validator errors into translated FieldErrors.
func FieldErrors(err error) []FieldError {
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(Translator)})
	}
	return flds
}

// ValidDate reports whether s is a real calendar date in the YYYY-MM-DD layout.
func ValidDate(s string) bool {
	if !isoDateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Custom Global Validators

// isoDateValidation only allows fixed-width ISO dates, so that lexical order is chronological.
func isoDateValidation(fl validator.FieldLevel) bool {
	return ValidDate(fl.Field().String())
}

// periodValidation checks the period against Conf "periods"; an empty list accepts anything.
func periodValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	periods := Periods()
	if val == "" || len(periods) == 0 {
		return true
	}
	for _, p := range periods {
		if strings.EqualFold(p, val) {
			return true
		}
	}
	return false
}
