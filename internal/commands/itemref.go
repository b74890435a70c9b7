package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"itemsync/internal/collection"
	"itemsync/internal/service"
)

// UsageError is a command-line mistake, printed verbatim.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// ErrItemRefRequired indicates no item reference was provided.
var ErrItemRefRequired = &UsageError{Msg: "item reference required"}

// ItemRef is a parsed item reference: either a server id or a 1-based
// position within the to-do ('t') or done ('d') section of the list.
type ItemRef struct {
	ID      int64
	HasID   bool
	Section rune
	Index   int
}

func (r ItemRef) String() string {
	if r.HasID {
		return fmt.Sprintf("#%d", r.ID)
	}
	return fmt.Sprintf("%c%d", r.Section, r.Index)
}

// ParseItemRef parses an item reference from args.
//
// Parsing rules:
// 1. All digits, optionally prefixed with '#' → server id (12, #12)
// 2. t<digits> or d<digits> → section position (t1, d3)
// 3. A lone t or d followed by an all-digit arg → section position (t 1)
// 4. A lone t or d with nothing after it → error: item reference required
// 5. Otherwise → error: invalid item reference: <ref>
func ParseItemRef(args []string) (ItemRef, error) {
	if len(args) == 0 {
		return ItemRef{}, ErrItemRefRequired
	}

	first := args[0]

	if id := strings.TrimPrefix(first, "#"); isAllDigits(id) {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil || n < 1 {
			return ItemRef{}, usagef("invalid item reference: %s", first)
		}
		return ItemRef{ID: n, HasID: true}, nil
	}

	if len(first) > 0 && isSection(rune(first[0])) {
		section := rune(first[0])

		if len(first) > 1 && isAllDigits(first[1:]) {
			return sectionRef(section, first[1:], first)
		}

		if len(first) == 1 {
			if len(args) < 2 {
				return ItemRef{}, ErrItemRefRequired
			}
			if isAllDigits(args[1]) {
				return sectionRef(section, args[1], first)
			}
		}
	}

	return ItemRef{}, usagef("invalid item reference: %s", first)
}

func sectionRef(section rune, digits, raw string) (ItemRef, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return ItemRef{}, usagef("invalid item reference: %s", raw)
	}
	return ItemRef{Section: section, Index: n}, nil
}

// ResolveItem returns the confirmed server copy of the item a reference
// points at. Section references refresh cache and index into its partition
// to find the id; list entries are summaries, so the item is always fetched.
func ResolveItem(ctx context.Context, svc service.Service, cache *collection.Cache, ref ItemRef) (service.Item, error) {
	if ref.HasID {
		return svc.Get(ctx, ref.ID)
	}

	view, err := cache.Reload(ctx)
	if err != nil {
		return service.Item{}, err
	}
	incomplete, complete := view.Partition()
	group := incomplete
	if ref.Section == 'd' {
		group = complete
	}
	if ref.Index < 1 || ref.Index > len(group) {
		return service.Item{}, usagef("item reference out of range: %s", ref)
	}
	return svc.Get(ctx, group[ref.Index-1].ID)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isSection(r rune) bool {
	return r == 't' || r == 'd'
}

// isUsageError reports whether err is a command-line mistake.
func isUsageError(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}
