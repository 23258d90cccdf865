package prompt

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-websettings/pkg/panel"
	"github.com/goliatone/go-websettings/pkg/setting"
)

// Editor walks the settings of a panel on a terminal and applies the answers
// with the same semantics as a form post.
type Editor struct {
	driver Driver
}

// Option configures an Editor.
type Option func(*Editor)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// NewEditor returns an editor prompting through survey unless a driver is
// supplied.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver()
	}
	return e
}

// Edit prompts for every setting of p and applies the answers.
func (e *Editor) Edit(ctx context.Context, p *panel.Panel) error {
	fields, err := e.Collect(ctx, p)
	if err != nil {
		return err
	}
	p.Apply(fields)
	return nil
}

// EditAll lets the user pick panels until they choose to finish.
func (e *Editor) EditAll(ctx context.Context, panels []*panel.Panel) error {
	if len(panels) == 0 {
		return nil
	}
	options := make([]string, 0, len(panels)+1)
	for _, p := range panels {
		options = append(options, PlainText(p.Name()))
	}
	options = append(options, "Done")

	for {
		idx, err := e.driver.Select(ctx, SelectConfig{Message: "Panel", Options: options, DefaultIndex: 0})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(panels) {
			return nil
		}
		if err := e.Edit(ctx, panels[idx]); err != nil {
			return err
		}
	}
}

// Collect prompts for every setting of p and returns the posted field map
// Panel.Apply expects. Toggles that are switched off and passwords that are
// left unchanged are absent from the map.
func (e *Editor) Collect(ctx context.Context, p *panel.Panel) (map[string]string, error) {
	fields := make(map[string]string)
	if err := e.driver.Info(ctx, "== "+PlainText(p.Name())+" =="); err != nil {
		return nil, err
	}

	for _, s := range p.Settings() {
		field := p.FieldName(s)
		label := PlainText(s.Description())
		if label == "" {
			label = s.Name()
		}

		switch s := s.(type) {
		case *setting.Note:
			if text := PlainText(s.String()); text != "" {
				if err := e.driver.Info(ctx, text); err != nil {
					return nil, err
				}
			}

		case *setting.Info:
			if err := e.driver.Info(ctx, fmt.Sprintf("%s: %s", label, PlainText(s.String()))); err != nil {
				return nil, err
			}

		case *setting.Password:
			change, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Change " + label + "?"})
			if err != nil {
				return nil, err
			}
			if !change {
				continue
			}
			value, err := e.driver.Password(ctx, InputConfig{Message: label})
			if err != nil {
				return nil, err
			}
			fields[field] = value

		case *setting.Toggle:
			on, err := e.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: s.Get()})
			if err != nil {
				return nil, err
			}
			if on {
				fields[field] = "on"
			}

		case *setting.Option:
			labels := s.Labels()
			if len(labels) == 0 {
				continue
			}
			idx, err := e.driver.Select(ctx, SelectConfig{Message: label, Options: labels, DefaultIndex: s.Get()})
			if err != nil {
				return nil, err
			}
			if idx >= 0 && idx < len(labels) {
				fields[field] = labels[idx]
			}

		default:
			value, err := e.driver.Input(ctx, InputConfig{
				Message:   label,
				Default:   s.String(),
				Validator: validatorFor(s.Kind()),
			})
			if err != nil {
				return nil, err
			}
			fields[field] = value
		}
	}
	return fields, nil
}

func validatorFor(kind setting.Kind) func(string) error {
	var parse func(string) error
	switch kind {
	case setting.KindInt:
		parse = func(v string) error { _, err := strconv.ParseInt(v, 10, 32); return err }
	case setting.KindUint:
		parse = func(v string) error { _, err := strconv.ParseUint(v, 10, 32); return err }
	case setting.KindFloat:
		parse = func(v string) error { _, err := strconv.ParseFloat(v, 32); return err }
	default:
		return nil
	}
	return func(v string) error {
		if err := parse(strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("not a valid %s", kind)
		}
		return nil
	}
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// PlainText strips markup from descriptions and notes for terminal display.
func PlainText(raw string) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	cleaned := html.UnescapeString(plainPolicy.Sanitize(raw))
	return strings.Join(strings.Fields(cleaned), " ")
}
