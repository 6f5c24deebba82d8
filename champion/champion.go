// Package champion parses and serializes the .cor binary format that the
// arena loader consumes. The header layout (magic, then NUL-padded
// metadata fields, then a fixed-size comment block, then the code body)
// mirrors the shape used throughout IntuitionEngine's chunk-format
// parsers (sid_parser.go, vgm_parser.go, ay_z80_parser.go): a magic-number
// check, encoding/binary BigEndian field reads at fixed offsets, and
// NUL-padded string fields, here adapted from those single-flat-struct
// readers into a dedicated package with a typed load error.
package champion

import (
	"encoding/binary"
	"fmt"
	"sync"
)

const (
	// Magic is the 4-byte value every .cor file must begin with.
	Magic = 0x00EA83F3

	// NameLength is the size, in bytes, of the NUL-padded name field.
	NameLength = 128

	// CommentLength is the size, in bytes, of the NUL-padded comment
	// field.
	CommentLength = 2048

	// HeaderSize is the total size, in bytes, of the header that
	// precedes the code body.
	HeaderSize = 4 + NameLength + 4 + 4 + CommentLength + padAfterComment

	// MaxBodySize is the largest code body a champion may carry
	// (CHAMP_MAX_SIZE = MEM_SIZE / 6, rounded down).
	MaxBodySize = 682
)

// padAfterComment pads the header out to the canonical 2884-byte total.
const padAfterComment = 2884 - (4 + NameLength + 4 + 4 + CommentLength)

const (
	offMagic      = 0
	offName       = 4
	offPad1       = offName + NameLength
	offBodyLength = offPad1 + 4
	offComment    = offBodyLength + 4
	offPad2       = offComment + CommentLength
)

// LoadErrorKind classifies why a champion binary was rejected.
type LoadErrorKind int

const (
	BadMagic LoadErrorKind = iota
	BodyTooLarge
	Truncated
	InvalidID
	TooManyChampions
	DuplicateID
)

func (k LoadErrorKind) String() string {
	switch k {
	case BadMagic:
		return "bad magic"
	case BodyTooLarge:
		return "body too large"
	case Truncated:
		return "truncated file"
	case InvalidID:
		return "invalid id"
	case TooManyChampions:
		return "too many champions"
	case DuplicateID:
		return "duplicate champion id"
	default:
		return "unknown load error"
	}
}

// LoadError is returned for any fatal, pre-match champion loading
// failure (see spec §7: LoadError is fatal before the match starts).
type LoadError struct {
	Kind  LoadErrorKind
	Which int // index of the offending champion, 0-based
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("champion %d: %s", e.Which, e.Kind)
}

// Champion is the metadata and code body of one loaded warrior.
type Champion struct {
	ID            int // assigned at load time: 1..N unless overridden
	Name          string
	Comment       string
	BodyLength    int
	LastLiveCycle int64 // -1 until the champion's first `live`
	Body          []byte
}

// Parse validates and decodes a single .cor file's bytes. which is the
// champion's 0-based position in the load batch, used only to annotate
// LoadError.
func Parse(data []byte, which int) (*Champion, error) {
	if len(data) < HeaderSize {
		return nil, &LoadError{Kind: Truncated, Which: which}
	}

	magic := binary.BigEndian.Uint32(data[offMagic : offMagic+4])
	if magic != Magic {
		return nil, &LoadError{Kind: BadMagic, Which: which}
	}

	bodyLength := binary.BigEndian.Uint32(data[offBodyLength : offBodyLength+4])
	if bodyLength > MaxBodySize {
		return nil, &LoadError{Kind: BodyTooLarge, Which: which}
	}

	if len(data) < HeaderSize+int(bodyLength) {
		return nil, &LoadError{Kind: Truncated, Which: which}
	}

	body := make([]byte, bodyLength)
	copy(body, data[HeaderSize:HeaderSize+int(bodyLength)])

	return &Champion{
		Name:          parsePaddedString(data[offName : offName+NameLength]),
		Comment:       parsePaddedString(data[offComment : offComment+CommentLength]),
		BodyLength:    int(bodyLength),
		LastLiveCycle: -1,
		Body:          body,
	}, nil
}

// Encode serializes c back into the .cor binary format, inverse of
// Parse (modulo the ID field, which is assigned at load time and not
// carried in the file itself).
func (c *Champion) Encode() []byte {
	buf := make([]byte, HeaderSize+len(c.Body))
	binary.BigEndian.PutUint32(buf[offMagic:offMagic+4], Magic)
	copy(buf[offName:offName+NameLength], []byte(c.Name))
	binary.BigEndian.PutUint32(buf[offBodyLength:offBodyLength+4], uint32(len(c.Body)))
	copy(buf[offComment:offComment+CommentLength], []byte(c.Comment))
	copy(buf[HeaderSize:], c.Body)
	return buf
}

// ParseAll validates and decodes a batch of .cor files concurrently.
// Parsing one file touches nothing another file's parse touches, so the
// work is fanned out across one goroutine per input and joined before
// ParseAll returns -- a barrier, not a background pool, in the spirit of
// oisee-z80-optimizer's WorkerPool but scaled down to the at-most-4-file
// batch a match ever loads. No VM state (arena, scheduler, processes)
// exists yet at this point; everything built from the result runs
// single-threaded, per spec §5.
func ParseAll(inputs [][]byte) ([]*Champion, error) {
	results := make([]*Champion, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i, data := range inputs {
		wg.Add(1)
		go func(i int, data []byte) {
			defer wg.Done()
			c, err := Parse(data, i)
			results[i] = c
			errs[i] = err
		}(i, data)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func parsePaddedString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
