// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads veribits settings from defaults, an optional JSON or
// YAML file, and the VERIBITS_* environment variables, in that order of
// increasing priority. Command-line flags are applied on top by the cli package.
package config
