// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a yaml file and validated using struct tags.
// The loaded Config struct is passed explicitly to the components that need
// it; nothing reads the environment at call sites except the SMTP credential
// overrides applied once during Load.
package config
