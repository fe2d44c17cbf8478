//go:build devtools

package config

// Builds tagged devtools open the inspector unless the config says otherwise.
const devtoolsDefault = true
