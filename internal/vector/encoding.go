package vector

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeVector converts a float32 vector to a length-prefixed little-endian
// byte slice suitable for storage in a BLOB column.
func EncodeVector(floats []float32) ([]byte, error) {
	buf := new(bytes.Buffer)

	err := binary.Write(buf, binary.LittleEndian, int32(len(floats)))
	if err != nil {
		return nil, fmt.Errorf("failed to write vector length: %w", err)
	}

	err = binary.Write(buf, binary.LittleEndian, floats)
	if err != nil {
		return nil, fmt.Errorf("failed to write vector values: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeVector converts a byte slice produced by EncodeVector back to a
// float32 vector.
func DecodeVector(data []byte) ([]float32, error) {
	buf := bytes.NewReader(data)

	var length int32
	err := binary.Read(buf, binary.LittleEndian, &length)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector length: %w", err)
	}
	if length < 0 {
		return nil, fmt.Errorf("invalid vector length: %d", length)
	}

	floats := make([]float32, length)
	err = binary.Read(buf, binary.LittleEndian, floats)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector values: %w", err)
	}

	return floats, nil
}
