// Package parameter presents the detail of a mission database parameter:
// the entry selected by a path offset into aggregate or array members, the
// root type descriptor and the alarm level of enumeration states.
package parameter
