package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report yaml key names, e.g. chat.max_tokens
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Validate checks the struct rules only.
func Validate(cfg Config) error {
	msgs := structErrors(cfg)
	if len(msgs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(msgs, "\n- "))
	}
	return nil
}

func structErrors(cfg Config) []string {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// drop the root "Config." namespace
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, describe(field, fe))
	}
	return out
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// NormalizeAndValidate returns a normalized copy plus errors and warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.App.Host = strings.TrimSpace(out.App.Host)
	out.App.AllowedOrigins = trimList(out.App.AllowedOrigins)
	out.Data.CSVPath = strings.TrimSpace(out.Data.CSVPath)
	out.Chat.Model = strings.TrimSpace(out.Chat.Model)
	out.Chat.KeyringAccount = strings.TrimSpace(out.Chat.KeyringAccount)
	out.Logging.Level = strings.ToLower(strings.TrimSpace(out.Logging.Level))

	for _, msg := range structErrors(out) {
		res.addErr("%s", msg)
	}

	if out.App.Host != "127.0.0.1" && out.App.Host != "localhost" && out.App.Host != "::1" {
		res.addWarn("app.host %q exposes the engine beyond this machine.", out.App.Host)
	}
	for _, o := range out.App.AllowedOrigins {
		if o == "*" {
			res.addWarn("app.allowed_origins contains \"*\"; any site can call the API.")
		}
	}
	if !strings.HasSuffix(strings.ToLower(out.Data.CSVPath), ".csv") && out.Data.CSVPath != "" {
		res.addWarn("data.csv_path %q does not end in .csv.", out.Data.CSVPath)
	}
	if out.Chat.Enabled && out.Chat.MaxContextChars == 0 {
		res.addWarn("chat.max_context_chars is 0; the assistant will see no rows.")
	}
	if out.Chat.Temperature > 1 {
		res.addWarn("chat.temperature is high (%.1f); answers may drift from the data.", out.Chat.Temperature)
	}
	if out.Chat.RequestsPerMinute > 120 {
		res.addWarn("chat.requests_per_minute is very high (%d) and may hit provider rate limits.", out.Chat.RequestsPerMinute)
	}

	return out, res
}
