// Package cli provides command-line interface setup and configuration
// for the vocabquiz application. It handles flag parsing, command
// creation, configuration management using cobra and viper, and builds
// the logrus logger shared by the other packages.
package cli
