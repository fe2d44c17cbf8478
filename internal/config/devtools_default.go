//go:build !devtools

package config

const devtoolsDefault = false
