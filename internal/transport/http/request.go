package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"architylez/internal/domain/models"
	"architylez/internal/lib/validate"
	"architylez/internal/storage/filestorage"
	"architylez/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

var errInvalidBody = models.NewValidationError(response.MsgInvalidBody)

// requestFields дает одинаковый доступ к полям multipart-формы,
// urlencoded-формы и JSON-тела.
type requestFields struct {
	form  url.Values
	raw   map[string]json.RawMessage
	files []filestorage.File
}

func parseRequest(c echo.Context) (*requestFields, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(ct, echo.MIMEApplicationJSON):
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return nil, errInvalidBody
		}
		// тело еще прочитает c.Bind
		c.Request().Body = io.NopCloser(bytes.NewReader(body))

		raw := make(map[string]json.RawMessage)
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &raw); err != nil {
				return nil, errInvalidBody
			}
		}
		return &requestFields{raw: raw}, nil

	case strings.HasPrefix(ct, echo.MIMEMultipartForm):
		mf, err := c.MultipartForm()
		if err != nil {
			return nil, errInvalidBody
		}
		files, err := readFiles(mf)
		if err != nil {
			return nil, err
		}
		return &requestFields{form: url.Values(mf.Value), files: files}, nil

	default:
		params, err := c.FormParams()
		if err != nil {
			return nil, errInvalidBody
		}
		return &requestFields{form: params}, nil
	}
}

// readFiles читает все файловые части формы в память. "images[]" и "images"
// считаются одним полем.
func readFiles(mf *multipart.Form) ([]filestorage.File, error) {
	fields := make([]string, 0, len(mf.File))
	for field := range mf.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var files []filestorage.File
	for _, field := range fields {
		for _, fh := range mf.File[field] {
			data, err := readPart(fh)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", field, err)
			}
			files = append(files, filestorage.File{
				Field:       strings.TrimSuffix(field, "[]"),
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(echo.HeaderContentType),
				Data:        data,
			})
		}
	}

	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func (f *requestFields) str(key string) string {
	if f.raw != nil {
		v, ok := f.raw[key]
		if !ok || string(v) == "null" {
			return ""
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return strings.TrimSpace(s)
		}
		return string(v)
	}

	return strings.TrimSpace(f.form.Get(key))
}

// list принимает повторяющиеся значения, JSON-массив (как строку или как
// значение JSON-тела) и строку через запятую.
func (f *requestFields) list(key string) []string {
	var items []string

	if f.raw != nil {
		v, ok := f.raw[key]
		if !ok || string(v) == "null" {
			return nil
		}
		if arr, ok := jsonStrings(v); ok {
			items = arr
		} else {
			items = []string{f.str(key)}
		}
	} else {
		items = append(items, f.form[key]...)
		items = append(items, f.form[key+"[]"]...)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, splitList(item)...)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func splitList(v string) []string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "[") {
		if arr, ok := jsonStrings([]byte(v)); ok {
			return trimAll(arr)
		}
	}
	return trimAll(strings.Split(v, ","))
}

func jsonStrings(b []byte) ([]string, bool) {
	var arr []interface{}
	if err := json.Unmarshal(b, &arr); err != nil {
		return nil, false
	}

	out := make([]string, 0, len(arr))
	for _, item := range arr {
		switch v := item.(type) {
		case nil:
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out, true
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (f *requestFields) number(key string) (*float64, error) {
	s := f.str(key)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, models.NewValidationError(validate.MsgInvalid, key)
	}
	return &v, nil
}

func (f *requestFields) integer(key string) (*int, error) {
	s := f.str(key)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		// "12.0" из числового поля формы
		fv, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || fv != float64(int(fv)) {
			return nil, models.NewValidationError(validate.MsgInvalid, key)
		}
		v = int(fv)
	}
	return &v, nil
}

// content возвращает документ блога: JSON-значение как есть, строку с
// JSON внутри как этот JSON, прочий текст как JSON-строку.
func (f *requestFields) content(key string) json.RawMessage {
	if f.raw != nil {
		v, ok := f.raw[key]
		if !ok || string(v) == "null" {
			return nil
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return v
		}
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return models.NormalizeContent(s)
	}

	s := f.form.Get(key)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return models.NormalizeContent(s)
}

// trimSpace обрезает пробелы в строковых полях структуры после c.Bind.
// Поле *string остается указателем: пустая строка после обрезки значит
// "передано пустым", а не "не передано".
func trimSpace(v interface{}) {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return
	}
	val = val.Elem()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanSet() {
			continue
		}

		switch {
		case field.Kind() == reflect.String:
			field.SetString(strings.TrimSpace(field.String()))
		case field.Kind() == reflect.Pointer && !field.IsNil() && field.Elem().Kind() == reflect.String:
			field.Elem().SetString(strings.TrimSpace(field.Elem().String()))
		}
	}
}
