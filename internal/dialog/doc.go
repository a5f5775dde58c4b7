// Package dialog holds short-lived form controllers.
//
// A dialog owns its form state, validates it, performs one backend action on
// Submit and then closes. Validation failures are returned as
// *ValidationError values, combined with multierr when several fields fail;
// they leave the dialog open so the form can be corrected.
package dialog
