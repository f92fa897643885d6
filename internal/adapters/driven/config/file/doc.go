// Package file reads and writes shotbrain's files under the home
// directory ($SHOTBRAIN_HOME, else ~/.shotbrain): config.toml settings
// and the optional classifier keyword table.
package file
