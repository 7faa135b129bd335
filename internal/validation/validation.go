package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"go-task-board/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// bcrypt 只处理前 72 字节
const MaxPasswordBytes = 72

// 手机号格式: 010-0000-0000, 连字符可省略
var phoneRegex = regexp.MustCompile(`^01[016789]-?\d{3,4}-?\d{4}$`)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
		_ = validate.RegisterValidation("phone", isPhone)
		_ = validate.RegisterValidation("strongpassword", isStrongPassword)
		_ = validate.RegisterValidation("notblank", notBlank)
	})
	return validate
}

// Struct 校验请求结构体, 失败时返回 invalid_input 错误并附带字段详情
func Struct(req any) error {
	err := instance().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.KindInvalidInput, "invalid request", err)
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = describe(fe)
	}
	return &apperr.Error{
		Kind:    apperr.KindInvalidInput,
		Message: "request validation failed",
		Details: details,
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "required"
	case "email":
		return "invalid email format"
	case "phone":
		return "invalid phone number format"
	case "strongpassword":
		return fmt.Sprintf("password must be 8 characters to %d bytes and contain upper, lower, digit and symbol", MaxPasswordBytes)
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "invalid value"
	}
}

func isPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isStrongPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len([]rune(pw)) < 8 || len(pw) > MaxPasswordBytes {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
