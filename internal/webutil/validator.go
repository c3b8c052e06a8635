// internal/webutil/validator.go
package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

// fieldLabels は json タグ名を画面の項目名に変換する
var fieldLabels = map[string]string{
	"name":             "Name",
	"email":            "Email",
	"password":         "Password",
	"phone":            "Phone number",
	"requested_course": "Requested course",
	"courses":          "Courses",
	"lesson_ids":       "Lesson ids",
	"learning_goal":    "Learning goal",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// registerTranslation は項目名を差し替えたメッセージを登録する
	registerTranslation := func(tag string, msg string, withParam bool) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			var t string
			if withParam {
				t, _ = ut.T(tag, label(fe.Field()), fe.Param())
			} else {
				t, _ = ut.T(tag, label(fe.Field()))
			}
			return t
		})
	}

	registerTranslation("required", "{0} is required.", false)
	registerTranslation("email", "{0} must be a valid email address.", false)
	registerTranslation("oneof", "{0} must be one of: {1}.", true)
}
