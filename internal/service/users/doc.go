// Package users implements account administration commands.
//
// The password command prompts twice without echo and submits the new
// password through the change password dialog.
package users
