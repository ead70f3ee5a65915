package scene

import (
	"io"

	"github.com/pkg/errors"
)

// ErrUnsupportedVersion is returned by a Decoder when a scene stream's
// magic header names a format version the core doesn't recognize.
var ErrUnsupportedVersion = errors.New("scene: unsupported file version")

// Decoder turns a serialized scene description into a Scene. The
// rendering core depends on this interface but does not implement
// concrete stream parsing beyond the magic-header version gate below —
// that is the explicit scene-file non-goal named in the specification.
type Decoder interface {
	Decode(r io.Reader) (*Scene, error)
}

// supportedMagic is the only header byte sequence VersionGate accepts;
// a concrete Decoder is expected to read it before parsing its own
// payload.
var supportedMagic = [4]byte{'S', 'R', 'T', '1'}

// VersionGate reads a 4-byte magic header from r and returns
// ErrUnsupportedVersion if it doesn't match the version this core was
// built against. It does not consume or interpret anything beyond those
// 4 bytes; a concrete Decoder calls it first, then parses its own
// format-specific payload from the remainder of r.
func VersionGate(r io.Reader) error {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return errors.Wrap(err, "scene: reading magic header")
	}
	if magic != supportedMagic {
		return ErrUnsupportedVersion
	}
	return nil
}
