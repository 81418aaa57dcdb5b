package config

// ConfigInitError reports a configuration file that could not be created or
// holds an invalid value.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}
