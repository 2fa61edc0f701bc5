// Package output provides structured output and error handling for the hatch CLI.
//
// # Printer
//
// Every command writes through a Printer, which switches between
// human-readable and JSON output:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Step(output.StepOK, "Copy template files", "12 files")
//	printer.Box("Move to project directory:", "$ cd my_app")
//
// Human output is styled with lipgloss and falls back to plain text when the
// writer is not a terminal.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: invalid project name, unknown template, missing flag
//	output.ExitSystemError // 2: I/O failure, subprocess failure, missing tool
//	output.ExitConflict    // 3: destination directory already exists
//
// Errors built with NewUserError, NewSystemError and NewConflictError carry
// their code through wrapping; GetExitCode recovers it in main.
package output
