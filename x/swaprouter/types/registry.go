package types

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// TagLength is the fixed byte length of an operation tag.
const TagLength = 4

// OpTag is a fixed 4-byte identifier naming a callable operation. It is the
// registry's dispatch key, derived from the operation's signature string.
type OpTag [TagLength]byte

// NewOpTag derives the tag for an operation signature, taking the first four
// bytes of the signature's SHA-256 digest.
func NewOpTag(signature string) OpTag {
	sum := sha256.Sum256([]byte(signature))
	var tag OpTag
	copy(tag[:], sum[:TagLength])
	return tag
}

// OpTagFromHex parses a tag from its 8-character hex form.
func OpTagFromHex(s string) (OpTag, error) {
	bz, err := hex.DecodeString(s)
	if err != nil {
		return OpTag{}, fmt.Errorf("OpTagFromHex: decode %q: %w", s, err)
	}
	if len(bz) != TagLength {
		return OpTag{}, fmt.Errorf("OpTagFromHex: want %d bytes, got %d", TagLength, len(bz))
	}
	var tag OpTag
	copy(tag[:], bz)
	return tag, nil
}

// String returns the tag's hex form.
func (t OpTag) String() string {
	return hex.EncodeToString(t[:])
}

// IsZero reports whether the tag is all zero bytes.
func (t OpTag) IsZero() bool {
	return t == OpTag{}
}

// MarshalText implements encoding.TextMarshaler so tags serialize as hex in
// JSON store values and genesis files.
func (t OpTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *OpTag) UnmarshalText(text []byte) error {
	tag, err := OpTagFromHex(string(text))
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

// Canonical operation tags served by the built-in swap handler.
var (
	OpTagQuote   = NewOpTag("quote(bytes[])")
	OpTagExecute = NewOpTag("execute(bytes[])")
	OpTagInit    = NewOpTag("init(bytes)")
)

// CutAction enumerates the registry mutations a cut can request.
type CutAction uint32

const (
	CutActionAdd CutAction = iota
	CutActionReplace
	CutActionRemove
)

// String returns the action's wire name.
func (a CutAction) String() string {
	switch a {
	case CutActionAdd:
		return "add"
	case CutActionReplace:
		return "replace"
	case CutActionRemove:
		return "remove"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(a))
	}
}

// Valid reports whether the action is one of the three known mutations.
func (a CutAction) Valid() bool {
	return a <= CutActionRemove
}

// Cut is a single registry mutation. Remove cuts must carry an empty module
// address; Add and Replace must carry the target module's address.
type Cut struct {
	Tag           OpTag     `json:"tag"`
	ModuleAddress string    `json:"module_address"`
	Action        CutAction `json:"action"`
}

// Validate checks the structural rules for a single cut. Binding-state rules
// (tag bound/unbound) are checked against the store when the batch applies.
func (c Cut) Validate() error {
	if !c.Action.Valid() {
		return fmt.Errorf("unknown cut action %d", uint32(c.Action))
	}
	if c.Tag.IsZero() {
		return fmt.Errorf("operation tag cannot be zero")
	}
	switch c.Action {
	case CutActionRemove:
		if c.ModuleAddress != "" {
			return fmt.Errorf("remove cut for tag %s must not name a module", c.Tag)
		}
	default:
		if c.ModuleAddress == "" {
			return fmt.Errorf("%s cut for tag %s must name a module", c.Action, c.Tag)
		}
	}
	return nil
}

// ModuleBinding is one registry entry as exposed by introspection and genesis.
type ModuleBinding struct {
	Tag           OpTag  `json:"tag"`
	ModuleAddress string `json:"module_address"`
}

// ModuleInfo groups a module address with every tag it owns.
type ModuleInfo struct {
	ModuleAddress string  `json:"module_address"`
	Tags          []OpTag `json:"tags"`
}

// ModuleHandler is the in-process implementation behind a registered module
// address. Dispatch feeds it the raw payload for the resolved tag; handlers
// decode, act, and encode their reply. Init runs inside the same atomic unit
// as the cut batch that named the handler's module as initModule.
type ModuleHandler interface {
	Run(ctx context.Context, tag OpTag, input []byte) ([]byte, error)
	Init(ctx context.Context, data []byte) error
}
