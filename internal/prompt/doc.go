// Package prompt asks the interactive questions of the create flow.
//
// Values already supplied on the command line are never asked again. When
// the session is not interactive a missing value is a usage error naming
// the flag that would have supplied it.
package prompt
