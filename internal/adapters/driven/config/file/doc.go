// Package file loads and saves srcmgr configuration as TOML: the
// application config (master-sources root, projects root) and the
// optional region table override.
package file
