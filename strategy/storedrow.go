package strategy

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/remind101/encbench/crypto/primitives"
	"github.com/remind101/encbench/record"
)

// SealedField is one encrypted field of a stored row.
type SealedField struct {
	Name  string
	Value primitives.SealedValue
}

// StoredRow is the persisted representation of one record. Plaintext rows
// carry Plain fields; encrypted rows carry Sealed fields, and envelope
// rows additionally carry the row's wrapped data key. Storage
// collaborators persist the wire encoding and never look inside.
type StoredRow struct {
	PK         string
	Plain      []record.Field
	Sealed     []SealedField
	WrappedKey []byte
}

const wireVersion = 1

// WireSize is the serialized size of the row in bytes. The orchestrator
// sums these per batch to get the persisted-size measurement; the framing
// is identical across strategies, so overhead comparisons stay fair.
func (r *StoredRow) WireSize() int {
	n := 1 + 4 + len(r.PK) + 2 + 2 + 4 + len(r.WrappedKey)
	for _, f := range r.Plain {
		n += 4 + len(f.Name) + 4 + len(f.Value)
	}
	for _, f := range r.Sealed {
		n += 4 + len(f.Name)
		n += 4 + len(f.Value.Nonce) + 4 + len(f.Value.Ciphertext) + 4 + len(f.Value.Tag)
	}
	return n
}

// EncodeBinary serializes the row with length-prefixed fields.
func (r *StoredRow) EncodeBinary() []byte {
	buf := make([]byte, 0, r.WireSize())
	buf = append(buf, wireVersion)
	buf = appendChunk(buf, []byte(r.PK))

	buf = binary.BigEndian.AppendUint16(buf, uint16(len(r.Plain)))
	for _, f := range r.Plain {
		buf = appendChunk(buf, []byte(f.Name))
		buf = appendChunk(buf, []byte(f.Value))
	}

	buf = binary.BigEndian.AppendUint16(buf, uint16(len(r.Sealed)))
	for _, f := range r.Sealed {
		buf = appendChunk(buf, []byte(f.Name))
		buf = appendChunk(buf, f.Value.Nonce)
		buf = appendChunk(buf, f.Value.Ciphertext)
		buf = appendChunk(buf, f.Value.Tag)
	}

	buf = appendChunk(buf, r.WrappedKey)
	return buf
}

// DecodeBinary parses a wire-encoded row.
func DecodeBinary(b []byte) (*StoredRow, error) {
	d := &decoder{buf: b}

	v, err := d.byte()
	if err != nil {
		return nil, err
	}
	if v != wireVersion {
		return nil, errors.Errorf("stored row: unknown wire version %d", v)
	}

	row := &StoredRow{}
	pk, err := d.chunk()
	if err != nil {
		return nil, err
	}
	row.PK = string(pk)

	nplain, err := d.uint16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(nplain); i++ {
		name, err := d.chunk()
		if err != nil {
			return nil, err
		}
		value, err := d.chunk()
		if err != nil {
			return nil, err
		}
		row.Plain = append(row.Plain, record.Field{Name: string(name), Value: string(value)})
	}

	nsealed, err := d.uint16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(nsealed); i++ {
		name, err := d.chunk()
		if err != nil {
			return nil, err
		}
		nonce, err := d.chunk()
		if err != nil {
			return nil, err
		}
		ct, err := d.chunk()
		if err != nil {
			return nil, err
		}
		tag, err := d.chunk()
		if err != nil {
			return nil, err
		}
		row.Sealed = append(row.Sealed, SealedField{
			Name:  string(name),
			Value: primitives.SealedValue{Nonce: nonce, Ciphertext: ct, Tag: tag},
		})
	}

	wrapped, err := d.chunk()
	if err != nil {
		return nil, err
	}
	if len(wrapped) > 0 {
		row.WrappedKey = wrapped
	}
	return row, nil
}

func appendChunk(buf, b []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) byte() (byte, error) {
	if d.off+1 > len(d.buf) {
		return 0, errors.New("stored row: truncated")
	}
	b := d.buf[d.off]
	d.off++
	return b, nil
}

func (d *decoder) uint16() (uint16, error) {
	if d.off+2 > len(d.buf) {
		return 0, errors.New("stored row: truncated")
	}
	v := binary.BigEndian.Uint16(d.buf[d.off:])
	d.off += 2
	return v, nil
}

func (d *decoder) chunk() ([]byte, error) {
	if d.off+4 > len(d.buf) {
		return nil, errors.New("stored row: truncated")
	}
	n := int(binary.BigEndian.Uint32(d.buf[d.off:]))
	d.off += 4
	if d.off+n > len(d.buf) {
		return nil, errors.New("stored row: truncated")
	}
	b := make([]byte, n)
	copy(b, d.buf[d.off:d.off+n])
	d.off += n
	return b, nil
}
