package strictjson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

// api 键名大小写敏感，大小写不符的键当作未知字段忽略
var api = jsoniter.Config{
	EscapeHTML:             true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

// validate 读取 binding 标签，错误路径使用 json 字段名
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError 必需字段缺失或为 null
type FieldError struct {
	Path string
	Tag  string
}

func (e *FieldError) Error() string {
	if e.Tag == "required" {
		return fmt.Sprintf("missing field `%s`", e.Path)
	}
	return fmt.Sprintf("invalid field `%s`: failed on '%s'", e.Path, e.Tag)
}

// Decode 解析 body 到 obj 并按 binding 标签校验
func Decode(body []byte, obj any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return io.ErrUnexpectedEOF
	}
	if !utf8.Valid(body) {
		return errors.New("invalid UTF-8 in JSON body")
	}
	if err := api.Unmarshal(body, obj); err != nil {
		return err
	}
	return check(obj)
}

func check(obj any) error {
	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Ptr && !val.IsNil() {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	err := validate.Struct(obj)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		return &FieldError{Path: path, Tag: fe.Tag()}
	}
	return err
}

// Binding gin 绑定，替代 binding.JSON
var Binding binding.BindingBody = jsonBinding{}

type jsonBinding struct{}

func (jsonBinding) Name() string {
	return "strictjson"
}

func (b jsonBinding) Bind(req *http.Request, obj any) error {
	if req == nil || req.Body == nil {
		return errors.New("invalid request")
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return b.BindBody(body, obj)
}

func (jsonBinding) BindBody(body []byte, obj any) error {
	return Decode(body, obj)
}
