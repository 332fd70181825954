package handler

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/ro"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// validator ships no Romanian translations, so the few tags in use are registered here.
var roTranslations = []struct {
	tag  string
	text string
}{
	{tag: "required", text: `Câmpul "{0}" este obligatoriu.`},
	{tag: "notblank", text: `Câmpul "{0}" este obligatoriu.`},
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, nil, err
	}

	// messages name the field the way the client sent it
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		default:
			return name
		}
	})

	locale := ro.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("ro")

	for _, t := range roTranslations {
		if err := validate.RegisterTranslation(t.tag, trans, registerFunc(t.tag, t.text), translate); err != nil {
			return nil, nil, err
		}
	}

	return validate, trans, nil
}

func registerFunc(tag, text string) validator.RegisterTranslationsFunc {
	return func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}
}

func translate(ut ut.Translator, fe validator.FieldError) string {
	msg, err := ut.T(fe.Tag(), fe.Field(), fe.Param())
	if err != nil {
		return fe.Error()
	}
	return msg
}
