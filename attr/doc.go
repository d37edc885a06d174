// Package attr binds compiled expressions to template attributes.
//
// A template attribute directive pairs an attribute name with an expression
// over the rendering environment. [Compile] parses the expression once, and
// [Directive.Render] evaluates it against a variable context, reporting
// whether the attribute should appear at all. [Merge] combines rendered
// class-list values without duplicating entries.
package attr
