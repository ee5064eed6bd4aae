package harvest

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration that decodes from config files either as
// a duration string ("30s", "1m") or as a bare number of seconds.
type Duration time.Duration

// Duration returns the value as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return d.decode(v)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	return d.decode(v)
}

func (d *Duration) decode(v any) error {
	switch value := v.(type) {
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return Errorf(EINVALID, "invalid duration: %q", value)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(value * float64(time.Second)))
	case int:
		*d = Duration(time.Duration(value) * time.Second)
	case int64:
		*d = Duration(time.Duration(value) * time.Second)
	default:
		return Errorf(EINVALID, "invalid duration: %v", fmt.Sprint(v))
	}
	return nil
}
