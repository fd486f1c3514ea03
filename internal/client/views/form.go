package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/client/importer"
	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

// Field is one editable attribute of T.
type Field[T any] struct {
	Name string
	Get  func(T) string
	// Set parses the user's answer; nil makes the field read-only in forms.
	Set func(*T, string) error
}

func TextField[T any](name string, get func(T) string, set func(*T, string)) Field[T] {
	return Field[T]{
		Name: name,
		Get:  get,
		Set: func(t *T, v string) error {
			set(t, v)
			return nil
		},
	}
}

// ListField edits a []string as "a | b | c".
func ListField[T any](name string, get func(T) []string, set func(*T, []string)) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(t T) string { return strings.Join(get(t), " | ") },
		Set: func(t *T, v string) error {
			set(t, importer.SplitList(v))
			return nil
		},
	}
}

func IntField[T any](name string, get func(T) int, set func(*T, int)) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(t T) string { return strconv.Itoa(get(t)) },
		Set: func(t *T, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s must be an integer", name)
			}
			set(t, n)
			return nil
		},
	}
}

func FloatField[T any](name string, get func(T) float64, set func(*T, float64)) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(t T) string { return strconv.FormatFloat(get(t), 'f', -1, 64) },
		Set: func(t *T, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%s must be a number", name)
			}
			set(t, f)
			return nil
		},
	}
}

func BoolField[T any](name string, get func(T) bool, set func(*T, bool)) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(t T) string { return strconv.FormatBool(get(t)) },
		Set: func(t *T, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s must be true or false", name)
			}
			set(t, b)
			return nil
		},
	}
}

// TimeField accepts the layouts models.ParseTimestamp does; "" or "-" clears it.
func TimeField[T any](name string, get func(T) models.Timestamp, set func(*T, models.Timestamp)) Field[T] {
	return Field[T]{
		Name: name,
		Get:  func(t T) string { return get(t).String() },
		Set: func(t *T, v string) error {
			v = strings.TrimSpace(v)
			if v == "" || v == clearValue {
				set(t, models.Timestamp{})
				return nil
			}
			ts, err := models.ParseTimestamp(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			set(t, ts)
			return nil
		},
	}
}

// ReadOnly shows a value that forms never ask for.
func ReadOnly[T any](name string, get func(T) string) Field[T] {
	return Field[T]{Name: name, Get: get}
}

// clearValue as an answer empties a field.
const clearValue = "-"

// fill asks for every editable field of item, keeping the current value on an
// empty answer. A value that does not parse is asked for again when the
// prompter supports it.
func fill[T any](p Prompter, fields []Field[T], item *T) error {
	for _, f := range fields {
		if f.Set == nil {
			continue
		}
		for {
			current := f.Get(*item)
			answer, err := p.Ask(f.Name, current)
			if err != nil {
				return err
			}
			if answer == "" {
				break
			}
			if answer == clearValue {
				answer = ""
			}
			if err := f.Set(item, answer); err != nil {
				if rp, ok := p.(retryPrompter); ok {
					rp.Invalid(err)
					continue
				}
				return err
			}
			break
		}
	}
	return nil
}

// retryPrompter is implemented by interactive prompters that can report a
// bad value and ask again.
type retryPrompter interface {
	Invalid(err error)
}

// setField assigns one named field, as in "set theme dark".
func setField[T any](fields []Field[T], item *T, name, value string) error {
	for _, f := range fields {
		if f.Name != name {
			continue
		}
		if f.Set == nil {
			return fmt.Errorf("%s is read-only", name)
		}
		return f.Set(item, value)
	}
	return fmt.Errorf("no field %q", name)
}

func describeItem[T any](fields []Field[T], item T) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "  %-22s %s\n", f.Name+":", f.Get(item))
	}
	return strings.TrimRight(b.String(), "\n")
}
