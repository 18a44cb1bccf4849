package decode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-yaml"

	strs "github.com/goliatone/go-strings"
)

// Format identifies a table encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for file extensions and names that do not map
// to a supported encoding.
var ErrUnknownFormat = errors.New("decode: unknown format")

// ParseFormat accepts "json", "yaml" and "yml" in any case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(name string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(path.Ext(name), "."))
}

// Context carries identifiers tied to a table payload.
type Context struct {
	Source string
	Format Format
}

// PreHook lets callers mutate or normalise the raw tree before conversion.
type PreHook func(Context, any) (any, error)

// PostHook lets callers adjust or validate the converted tree.
type PostHook func(Context, *strs.Value) error

// DecoderOption configures a Decoder instance.
type DecoderOption func(*Decoder)

// Decoder converts JSON or YAML payloads into string trees.
type Decoder struct {
	preHooks  []PreHook
	postHooks []PostHook
	useNumber bool
}

// WithPreHook applies hook prior to conversion.
func WithPreHook(hook PreHook) DecoderOption {
	return func(d *Decoder) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after conversion completes.
func WithPostHook(hook PostHook) DecoderOption {
	return func(d *Decoder) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithUseNumber decodes JSON numbers as json.Number so large integers keep
// their textual form until conversion.
func WithUseNumber() DecoderOption {
	return func(d *Decoder) {
		d.useNumber = true
	}
}

// NewDecoder builds a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode parses payload and converts it into a Value, applying hooks.
func (d *Decoder) Decode(ctx Context, payload []byte) (strs.Value, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return strs.Value{}, fmt.Errorf("decode: payload is empty for %q", ctx.Source)
	}

	current, err := d.parse(ctx, payload)
	if err != nil {
		return strs.Value{}, fmt.Errorf("decode: parse %q: %w", ctx.Source, err)
	}

	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return strs.Value{}, fmt.Errorf("decode: pre-hook for %q failed: %w", ctx.Source, err)
		}
		if next != nil {
			current = next
		}
	}

	result, err := strs.FromAny(current)
	if err != nil {
		return strs.Value{}, fmt.Errorf("decode: convert %q: %w", ctx.Source, err)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &result); err != nil {
			return strs.Value{}, fmt.Errorf("decode: post-hook for %q failed: %w", ctx.Source, err)
		}
	}

	return result, nil
}

// DecodeTable decodes payload into a named table.
func (d *Decoder) DecodeTable(ctx Context, name string, payload []byte, opts ...strs.TableOption) (strs.Table, error) {
	root, err := d.Decode(ctx, payload)
	if err != nil {
		return strs.Table{}, err
	}
	return strs.NewTable(name, root, opts...)
}

func (d *Decoder) parse(ctx Context, payload []byte) (any, error) {
	var raw any
	switch ctx.Format {
	case FormatJSON, "":
		decoder := json.NewDecoder(bytes.NewReader(payload))
		if d.useNumber {
			decoder.UseNumber()
		}
		if err := decoder.Decode(&raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(payload, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, ctx.Format)
	}
	return raw, nil
}

// Encode renders value in format. indent <= 0 produces compact JSON and
// flow-style YAML.
func Encode(ctx context.Context, format Format, value strs.Value, indent int) ([]byte, error) {
	native := value.Native()
	switch format {
	case FormatJSON:
		if indent > 0 {
			return json.MarshalIndent(native, "", strings.Repeat(" ", indent))
		}
		return json.Marshal(native)
	case FormatYAML:
		var opts []yaml.EncodeOption
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}
		return yaml.MarshalContext(ctx, native, opts...)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}
