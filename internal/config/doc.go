// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates the launcher configuration.
//
// Configuration is optional: with no config file present the launcher runs
// entirely on defaults matching the Prompt Studio project layout. When a
// config file exists it is written in CUE, validated against the embedded
// #Config schema, and merged into Viper on top of the defaults.
package config
