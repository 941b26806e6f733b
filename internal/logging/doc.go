// Package logging provides leveled console logging for pswdfile.
//
// Verbosity is controlled by two flags:
//
//   - -v: shows info messages
//   - -debug: shows info and debug messages
//
// Warnings and errors are always written to stderr. Prefixes are coloured
// with fatih/color, which honours NO_COLOR and non-terminal output.
//
// The zero Logger is silent apart from warnings and errors:
//
//	log := logging.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("stored record %s", key)
package logging
