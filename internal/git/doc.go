// Package git provides the Git operations hatch needs by shelling out to
// the git executable.
//
// Two modes are used:
//
//   - Capture mode (Run, RunContext) collects stdout for queries such as
//     IsRepo or HEAD and turns failures into *output.ExitError values.
//   - Streaming mode (InitRepo) goes through a runner.Runner so git's own
//     output reaches the user's terminal while a new repository is created.
//
// Example:
//
//	if err := git.InitRepo(ctx, r, "/path/to/my_app", "Init project"); err != nil {
//	    return err // already an *output.ExitError
//	}
//	sha, _ := git.HEAD("/path/to/my_app")
package git
