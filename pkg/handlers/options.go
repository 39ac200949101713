package handlers

import (
	"reflect"
	"regexp"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeOptions decodes a loosely typed option map, as read from a
// configuration file, into target. Fields are matched by their option
// tag. String values are converted to numbers, booleans and compiled
// regexes, and single values are lifted into slices. Unknown keys are an
// error.
func DecodeOptions(input map[string]interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "option",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToRegexpHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

var regexpType = reflect.TypeOf(&regexp.Regexp{})

// stringToRegexpHookFunc compiles strings decoded into *regexp.Regexp fields
func stringToRegexpHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != regexpType {
			return data, nil
		}
		return regexp.Compile(data.(string))
	}
}
