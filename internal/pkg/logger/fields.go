package logger

import "go.uber.org/zap"

// Uint64 creates a field with a uint64 value
func Uint64(key string, value uint64) zap.Field {
	return zap.Uint64(key, value)
}

// Err creates an "error" field, tolerating nil errors
func Err(err error) zap.Field {
	if err == nil {
		return zap.Skip()
	}
	return zap.String("error", err.Error())
}

// Strings creates a field with a string slice value
func Strings(key string, values []string) zap.Field {
	return zap.Strings(key, values)
}

// Float64 creates a field with a float64 value
func Float64(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}
