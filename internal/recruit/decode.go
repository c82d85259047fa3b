package recruit

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// decodeLoose decodes a JSON object through mapstructure so that loosely typed
// payloads (numbers sent as strings and the other way around) still land in
// typed fields, and unknown keys end up in a ",remain" map. A scalar value
// that cannot be converted at all leaves its field unset.
func decodeLoose(data []byte, target any) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw == nil {
		return nil
	}

	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       dropUnconvertible,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	return nil
}

// dropUnconvertible replaces a value that cannot land in a scalar field with
// nil for pointers and the zero value otherwise.
func dropUnconvertible(from, to reflect.Type, data any) (any, error) {
	target := to
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if convertible(from, target.Kind(), data) {
		return data, nil
	}
	if to.Kind() == reflect.Ptr {
		return nil, nil
	}
	return reflect.Zero(to).Interface(), nil
}

// convertible mirrors what weakly typed decoding accepts for scalar kinds.
func convertible(from reflect.Type, to reflect.Kind, data any) bool {
	if !isScalar(to) {
		return true
	}

	switch from.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return false
	case reflect.String:
		s := reflect.ValueOf(data).String()
		if s == "" {
			return true
		}
		var err error
		switch to {
		case reflect.Bool:
			_, err = strconv.ParseBool(s)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			_, err = strconv.ParseInt(s, 0, 64)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			_, err = strconv.ParseUint(s, 0, 64)
		case reflect.Float32, reflect.Float64:
			_, err = strconv.ParseFloat(s, 64)
		}
		return err == nil
	}
	return true
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
