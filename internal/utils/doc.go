// Package utils hosts shared infrastructure for the rulesync CLI: the Viper
// configuration loader, the zap logger factory, and command context helpers.
package utils
