package domain

import "fmt"

// ConfigurationError indicates missing or invalid configuration or environment.
type ConfigurationError struct {
	Message string
}

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string { return e.Message }

// ClusterError indicates a failed Kubernetes API or kubectl operation.
type ClusterError struct {
	Message string
	Err     error
}

func NewClusterError(err error, format string, args ...interface{}) *ClusterError {
	return &ClusterError{Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *ClusterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClusterError) Unwrap() error { return e.Err }

// ManifestError indicates a manifest could not be fetched or rendered.
type ManifestError struct {
	Message string
	Err     error
}

func NewManifestError(err error, format string, args ...interface{}) *ManifestError {
	return &ManifestError{Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ManifestError) Unwrap() error { return e.Err }

// CommandNotFoundError indicates a required external binary is not installed.
type CommandNotFoundError struct {
	Command string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s command is not installed", e.Command)
}

// PasswordError indicates a password could not be generated or hashed.
type PasswordError struct {
	Message string
	Err     error
}

func NewPasswordError(err error, format string, args ...interface{}) *PasswordError {
	return &PasswordError{Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *PasswordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PasswordError) Unwrap() error { return e.Err }

// ValidationError indicates user-supplied input that cannot be used
// (bad role, unusable username, mismatched passwords).
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }
