package parameter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/oshokin/mission-console/internal/domain/mdb"
	"github.com/oshokin/mission-console/internal/observable"
)

var (
	// ErrEntryNotFound is returned when an offset names no member of the parameter.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidOffset is returned for offsets that cannot be parsed.
	ErrInvalidOffset = errors.New("invalid offset")
)

// Detail holds the entry and type shown for one parameter.
type Detail struct {
	// entry is the parameter itself or the member selected by the offset.
	entry *observable.Subject[mdb.Entry]
	// ptype is the type of the root parameter.
	ptype *observable.Subject[*mdb.ParameterType]
}

// NewDetail returns an empty detail.
func NewDetail() *Detail {
	return &Detail{
		entry: observable.NewSubject[mdb.Entry](nil),
		ptype: observable.NewSubject[*mdb.ParameterType](nil),
	}
}

// Update selects the entry of p at offset, or p itself when offset is empty,
// and the root type of p. A nil parameter resets both. When offset names no
// member, the entry is reset and an error is returned while the type is kept.
func (d *Detail) Update(p *mdb.Parameter, offset string) error {
	if p == nil {
		d.entry.Next(nil)
		d.ptype.Next(nil)

		return nil
	}

	d.ptype.Next(p.Type)

	if offset == "" {
		d.entry.Next(p)

		return nil
	}

	entry, err := EntryForOffset(p, offset)
	if err != nil {
		d.entry.Next(nil)

		return err
	}

	d.entry.Next(entry)

	return nil
}

// Entry returns the selected entry, nil when none.
func (d *Detail) Entry() mdb.Entry {
	return d.entry.Value()
}

// Type returns the root type descriptor, nil when none.
func (d *Detail) Type() *mdb.ParameterType {
	return d.ptype.Value()
}

// WatchEntry streams entry changes until Close.
func (d *Detail) WatchEntry() <-chan mdb.Entry {
	ch, _ := d.entry.Subscribe()

	return ch
}

// Close ends every stream returned by WatchEntry.
func (d *Detail) Close() {
	d.entry.Complete()
	d.ptype.Complete()
}

// EntryForOffset walks offset, a sequence of ".member" and "[index]"
// segments, from the type of p.
func EntryForOffset(p *mdb.Parameter, offset string) (mdb.Entry, error) {
	if p == nil {
		return nil, ErrEntryNotFound
	}

	var (
		entry mdb.Entry = p
		ptype           = p.Type
		path            = p.QualifiedName
		rest            = offset
	)

	for rest != "" {
		switch rest[0] {
		case '.':
			name := rest[1:]
			if end := strings.IndexAny(name, ".["); end >= 0 {
				name = name[:end]
			}

			if name == "" {
				return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
			}

			member, ok := ptype.FindMember(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s has no member %q", ErrEntryNotFound, path, name)
			}

			entry, ptype = member, member.Type
			path += "." + name
			rest = rest[1+len(name):]
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
			}

			index, err := strconv.Atoi(rest[1:end])
			if err != nil || index < 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
			}

			if ptype == nil || ptype.ArrayInfo == nil {
				return nil, fmt.Errorf("%w: %s is not an array", ErrEntryNotFound, path)
			}

			path += rest[:end+1]
			ptype = ptype.ArrayInfo.Type
			entry = &mdb.Member{
				Name:             entry.EntryName() + rest[:end+1],
				ShortDescription: entry.Description(),
				Type:             ptype,
			}
			rest = rest[end+1:]
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
		}
	}

	return entry, nil
}
