// Package project creates a new project from a template.
//
// The Initializer runs the creation pipeline in order: refuse an existing
// destination, create it, copy the rendered template, install
// dependencies when the project declares them, record the initial git
// commit and print a summary. Each step is reported as a StepResult so
// callers can render progress or JSON.
package project
