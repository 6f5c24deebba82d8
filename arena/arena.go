// Package arena implements the circular memory buffer shared by every
// running champion: a fixed-size byte sequence with modular addressing, in
// the same spirit as gone/mem.Bus (a flat byte array reached through
// Read/Write), but wrapping instead of panicking at the edges, and carrying
// an owner map for external inspection.
package arena

// Size is the number of bytes in the arena (classic Core War MEM_SIZE).
const Size = 4096

// IdxMod is the secondary modulus applied to index-addressed operands, to
// bound how far an indirect access can reach from the current PC.
const IdxMod = Size / 8

// Arena is the sole shared mutable state of a match. Every address passed
// to its methods is reduced modulo Size before use, so there is no
// out-of-bounds runtime state to guard against.
type Arena struct {
	mem [Size]byte

	// owner records, per byte, the champion id that last wrote it (0 =
	// never written). It is consulted by no VM semantic; it exists
	// purely so an external observer can render ownership between
	// cycles.
	owner [Size]byte
}

// New returns a zeroed Arena.
func New() *Arena {
	return &Arena{}
}

func wrap(addr int32) int {
	m := int(addr) % Size
	if m < 0 {
		m += Size
	}
	return m
}

// ReadByte reads one byte at addr mod Size.
func (a *Arena) ReadByte(addr int32) byte {
	return a.mem[wrap(addr)]
}

// WriteByte writes one byte at addr mod Size, attributing the write to
// owner (a champion id, or 0 for an unattributed write).
func (a *Arena) WriteByte(addr int32, v byte, owner byte) {
	i := wrap(addr)
	a.mem[i] = v
	a.owner[i] = owner
}

// ReadI32 reads a 4-byte big-endian value starting at addr, each of the
// four bytes fetched independently modulo Size -- a read that straddles
// the wrap point is legal.
func (a *Arena) ReadI32(addr int32) int32 {
	var v uint32
	for i := int32(0); i < 4; i++ {
		v = v<<8 | uint32(a.ReadByte(addr+i))
	}
	return int32(v)
}

// WriteI32 writes v as 4 big-endian bytes, symmetric with ReadI32: each
// byte offset is reduced modulo Size independently.
func (a *Arena) WriteI32(addr int32, v int32, owner byte) {
	u := uint32(v)
	for i := int32(0); i < 4; i++ {
		shift := 24 - 8*i
		a.WriteByte(addr+i, byte(u>>uint(shift)), owner)
	}
}

// Memcpy copies length bytes from src to dst, byte-wise, each offset
// reduced modulo Size independently -- source and destination ranges may
// overlap or wrap without corrupting either.
func (a *Arena) Memcpy(dst, src int32, length int, owner byte) {
	tmp := make([]byte, length)
	for i := 0; i < length; i++ {
		tmp[i] = a.ReadByte(src + int32(i))
	}
	for i := 0; i < length; i++ {
		a.WriteByte(dst+int32(i), tmp[i], owner)
	}
}

// Blit copies an external byte slice into the arena starting at dst, one
// byte at a time with modular reduction -- used by the loader to seed a
// champion's body into the arena.
func (a *Arena) Blit(dst int32, data []byte, owner byte) {
	for i, b := range data {
		a.WriteByte(dst+int32(i), b, owner)
	}
}

// OwnerAt reports the champion id that last wrote the byte at addr mod
// Size, or 0 if the byte has never been written.
func (a *Arena) OwnerAt(addr int32) byte {
	return a.owner[wrap(addr)]
}

// Bytes returns a copy of the full arena contents, for snapshotting.
func (a *Arena) Bytes() [Size]byte {
	return a.mem
}

// Owners returns a copy of the full owner map, for snapshotting.
func (a *Arena) Owners() [Size]byte {
	return a.owner
}
